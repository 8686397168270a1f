// Package token implements the signed claims token shared by all services.
// A token embeds the subject id and role, is signed with the process-wide
// symmetric key, and is the only thing a service needs to reconstruct the
// caller's identity. There is no session state and no shared database.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/marketkit/marketplace-system/internal/core/domain"
)

// DefaultTTL is the fixed token lifetime. It is not configurable per
// issuance.
const DefaultTTL = 24 * time.Hour

var (
	// ErrTokenMalformed covers everything that is not a well-formed token
	// signed under the current key: garbage input, truncated tokens, bad
	// signatures, unknown roles.
	ErrTokenMalformed = errors.New("malformed token")
	// ErrTokenExpired means the signature verified but the token's lifetime
	// has passed.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the JWT payload carried by every issued token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Codec issues and verifies HS256-signed claims tokens. The key is fixed for
// the process lifetime; tokens issued under a different key are simply
// unverifiable, there is no multi-key verification window.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a Codec signing with secret. A non-positive ttl falls back
// to DefaultTTL.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the subject with iat=now and exp=now+ttl.
func (c *Codec) Issue(subjectID string, role domain.Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify parses and validates raw and reconstructs the embedded identity.
// It never panics on untrusted input: any parse, signature, or claim problem
// yields ErrTokenMalformed, and a valid-but-stale token yields
// ErrTokenExpired.
func (c *Codec) Verify(raw string) (domain.Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, ErrTokenExpired
		}
		return domain.Identity{}, ErrTokenMalformed
	}
	if !parsed.Valid || claims.Subject == "" {
		return domain.Identity{}, ErrTokenMalformed
	}

	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return domain.Identity{}, ErrTokenMalformed
	}

	return domain.Identity{SubjectID: claims.Subject, Role: role}, nil
}
