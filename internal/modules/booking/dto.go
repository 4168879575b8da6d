package booking

import "servic/internal/domain"

type CreateBookingRequest struct {
	ProviderID  int64   `json:"providerId"`
	Date        string  `json:"date"`
	TimeSlot    string  `json:"timeSlot"`
	ClientPhone string  `json:"clientPhone"`
	Notes       *string `json:"notes"`
}

// UpdateStatusRequest is a partial update; a nil field was not sent.
type UpdateStatusRequest struct {
	Status *string `json:"status"`
	IsNew  *bool   `json:"isNew"`
}

// Event is the payload published for booking lifecycle events.
type Event struct {
	BookingID  int64                `json:"bookingId"`
	ProviderID int64                `json:"providerId"`
	UserID     int64                `json:"userId"`
	Date       string               `json:"date"`
	TimeSlot   string               `json:"timeSlot"`
	Status     domain.BookingStatus `json:"status"`
	Previous   domain.BookingStatus `json:"previousStatus,omitempty"`
}

func newEvent(b *domain.Booking, previous domain.BookingStatus) Event {
	return Event{
		BookingID:  b.ID,
		ProviderID: b.ProviderID,
		UserID:     b.UserID,
		Date:       domain.FormatDay(b.Date),
		TimeSlot:   b.TimeSlot,
		Status:     b.Status,
		Previous:   previous,
	}
}
