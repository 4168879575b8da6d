package availability

import "servic/internal/pkg/apperr"

var (
	ErrInvalidProviderID = apperr.Validation("INVALID_PROVIDER_ID", "Invalid provider id")
	ErrInvalidDate       = apperr.Validation("INVALID_DATE", "Date must be formatted as YYYY-MM-DD")
	ErrPastDate          = apperr.Validation("PAST_DATE", "Cannot book a past date")
	ErrProviderNotFound  = apperr.NotFound("PROVIDER_NOT_FOUND", "Provider not found")
)
