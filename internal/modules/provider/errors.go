package provider

import "servic/internal/pkg/apperr"

var (
	ErrMissingFields       = apperr.Validation("MISSING_FIELDS", "Missing required fields")
	ErrInvalidPhone        = apperr.Validation("INVALID_PHONE", "Phone number must have 10 to 15 digits")
	ErrInvalidCategory     = apperr.Validation("INVALID_CATEGORY", "Unknown category")
	ErrInvalidWorkingHours = apperr.Validation("INVALID_WORKING_HOURS", "Working hours need HH:MM start before end and weekday names")
	ErrInvalidDetails      = apperr.Validation("VALIDATION_ERROR", "Invalid provider details")
	ErrInvalidID           = apperr.Validation("INVALID_ID", "Invalid provider id")
	ErrNoChanges           = apperr.Validation("NO_CHANGES", "No fields to update")
	ErrProviderNotFound    = apperr.NotFound("PROVIDER_NOT_FOUND", "Provider not found")
	ErrProviderExists      = apperr.Conflict("PROVIDER_EXISTS", "You already have a provider profile")
	ErrNotOwner            = apperr.Forbidden("FORBIDDEN", "You can only edit your own provider profile")
)
