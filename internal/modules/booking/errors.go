package booking

import "servic/internal/pkg/apperr"

var (
	ErrMissingFields     = apperr.Validation("MISSING_FIELDS", "Missing required fields")
	ErrInvalidPhone      = apperr.Validation("INVALID_PHONE", "Please enter a valid phone number (10-15 digits)")
	ErrInvalidDate       = apperr.Validation("INVALID_DATE", "Date must be formatted as YYYY-MM-DD")
	ErrPastDate          = apperr.Validation("PAST_DATE", "Cannot book a past date")
	ErrInvalidTimeSlot   = apperr.Validation("INVALID_TIME_SLOT", "Time slot must be formatted as HH:MM")
	ErrNotesTooLong      = apperr.Validation("NOTES_TOO_LONG", "Notes must be at most 1000 characters")
	ErrInvalidID         = apperr.Validation("INVALID_ID", "Invalid id")
	ErrEmptyPatch        = apperr.Validation("NO_CHANGES", "Nothing to update")
	ErrInvalidStatus     = apperr.Validation("INVALID_STATUS", "Status must be one of pending, confirmed, completed, cancelled")
	ErrInvalidIsNew      = apperr.Validation("INVALID_IS_NEW", "isNew can only be cleared")
	ErrInvalidTransition = apperr.Validation("INVALID_STATUS_TRANSITION", "This status change is not allowed")
	ErrUnknownUser       = apperr.Unauthenticated("UNAUTHORIZED", "Authentication required")
	ErrForbidden         = apperr.Forbidden("FORBIDDEN", "You are not allowed to change this booking")
	ErrProviderNotFound  = apperr.NotFound("PROVIDER_NOT_FOUND", "Provider not found")
	ErrBookingNotFound   = apperr.NotFound("BOOKING_NOT_FOUND", "Booking not found")
	ErrSlotTaken         = apperr.Conflict("SLOT_TAKEN", "This time slot is already booked")
	ErrBookingChanged    = apperr.Conflict("BOOKING_CHANGED", "The booking was changed by someone else, please reload")
)
