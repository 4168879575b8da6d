package admin

import "servic/internal/pkg/apperr"

var (
	ErrInvalidID        = apperr.Validation("INVALID_ID", "Invalid provider id")
	ErrProviderNotFound = apperr.NotFound("PROVIDER_NOT_FOUND", "Provider not found")
)
