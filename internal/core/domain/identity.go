package domain

import "strings"

// Role is the closed set of roles a marketplace account can hold.
type Role string

const (
	RoleClient Role = "CLIENT"
	RoleSeller Role = "SELLER"
)

// ParseRole maps a free-form role string onto the closed Role set.
// Matching is case-insensitive; the second return value reports whether
// the input named a known role.
func ParseRole(s string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RoleClient):
		return RoleClient, true
	case string(RoleSeller):
		return RoleSeller, true
	}
	return "", false
}

// Identity is the authenticated principal reconstructed from a bearer token
// on every request. It lives only for the duration of a single request and
// is never persisted or cached.
type Identity struct {
	SubjectID string
	Role      Role
}
