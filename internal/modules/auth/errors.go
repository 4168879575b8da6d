package auth

import "servic/internal/pkg/apperr"

var (
	ErrMissingSignupFields = apperr.Validation("MISSING_FIELDS", "Name, email, and password are required")
	ErrMissingLoginFields  = apperr.Validation("MISSING_FIELDS", "Email and password are required")
	ErrInvalidEmail        = apperr.Validation("INVALID_EMAIL", "Please enter a valid email address")
	ErrWeakPassword        = apperr.Validation("WEAK_PASSWORD", "Password must be at least 6 characters")
	ErrEmailAlreadyExists  = apperr.Conflict("EMAIL_EXISTS", "Email already registered")
	ErrInvalidCredentials  = apperr.Unauthenticated("INVALID_CREDENTIALS", "Invalid email or password")
)
