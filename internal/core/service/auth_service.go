package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/marketkit/marketplace-system/internal/api/metrics"
	"github.com/marketkit/marketplace-system/internal/core/domain"
	"github.com/marketkit/marketplace-system/internal/core/ports"
	"github.com/marketkit/marketplace-system/internal/core/token"
)

// AuthService implements registration and login for the user service.
type AuthService struct {
	users  ports.UserRepository
	codec  *token.Codec
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, codec *token.Codec, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, codec: codec, logger: logger}
}

// Register creates an account and issues its first token. Any role string
// other than "SELLER" (case-insensitive) registers a client account.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*ports.AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	parsedRole := domain.RoleClient
	if strings.EqualFold(role, string(domain.RoleSeller)) {
		parsedRole = domain.RoleSeller
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         parsedRole,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	return s.issue(created)
}

// Login verifies credentials and issues a fresh token. Unknown email and
// wrong password produce the same error on purpose.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (*ports.AuthResult, error) {
	tok, err := s.codec.Issue(user.ID, user.Role)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("token issuance failed")
		return nil, err
	}

	metrics.TokensIssuedTotal.WithLabelValues(string(user.Role)).Inc()
	return &ports.AuthResult{Token: tok, User: user}, nil
}
