package domain

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailTaken          = errors.New("email already in use")
	ErrUserNotFound        = errors.New("user not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrMediaNotFound       = errors.New("media not found")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrForbidden           = errors.New("access forbidden")
	ErrInternalTrustDenied = errors.New("internal trust denied")

	// Upload validation errors, all checked before any storage side effect.
	ErrEmptyFile            = errors.New("empty file")
	ErrFileTooLarge         = errors.New("file too large (max 2MB)")
	ErrUnsupportedMediaType = errors.New("unsupported file type")
	ErrMediaIDRequired      = errors.New("mediaId required")
	ErrProductIDRequired    = errors.New("productId required")
)
