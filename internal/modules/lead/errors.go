package lead

import "servic/internal/pkg/apperr"

var (
	ErrMissingFields    = apperr.Validation("MISSING_FIELDS", "providerId and type are required")
	ErrInvalidType      = apperr.Validation("INVALID_LEAD_TYPE", "type must be call or whatsapp")
	ErrProviderNotFound = apperr.NotFound("PROVIDER_NOT_FOUND", "Provider not found")
	ErrNoProfile        = apperr.NotFound("PROVIDER_NOT_FOUND", "You have no provider profile")
)
