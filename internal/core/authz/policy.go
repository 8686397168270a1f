// Package authz holds the pure authorization decisions. Every state-mutating
// operation consults one of these predicates before touching a repository;
// read-only listing and retrieval endpoints deliberately perform no check.
package authz

import "github.com/marketkit/marketplace-system/internal/core/domain"

// RequireRole reports whether an identity is present and holds role.
// An absent identity always fails, whatever role is required.
func RequireRole(id *domain.Identity, role domain.Role) bool {
	return id != nil && id.Role == role
}

// RequireOwner reports whether an identity is present and owns the resource.
func RequireOwner(id *domain.Identity, resourceOwnerID string) bool {
	return id != nil && resourceOwnerID != "" && id.SubjectID == resourceOwnerID
}
