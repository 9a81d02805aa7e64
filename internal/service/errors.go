package service

import "errors"

// Sentinel errors shared by all services; handlers map them to HTTP codes.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrConflict             = errors.New("resource already exists")
	ErrCategoryNotEmpty     = errors.New("category still owns products")
	ErrLocationNotEmpty     = errors.New("location still owns products")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired reset code")
	ErrForbidden            = errors.New("access denied: insufficient permissions")
	ErrValidation           = errors.New("validation failed")
)
