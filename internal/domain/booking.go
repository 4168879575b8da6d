package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Active reports whether a booking in this status occupies its slot.
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingConfirmed
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

// CanTransition reports whether from -> to is a legal lifecycle step.
// completed and cancelled are terminal.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ActiveStatuses are the statuses guarded by the one-booking-per-slot rule.
func ActiveStatuses() []BookingStatus {
	return []BookingStatus{BookingPending, BookingConfirmed}
}

type Booking struct {
	ID          int64         `json:"id"`
	ProviderID  int64         `json:"providerId"`
	UserID      int64         `json:"userId"`
	ClientName  string        `json:"clientName"`
	ClientEmail string        `json:"clientEmail"`
	ClientPhone string        `json:"clientPhone"`
	Date        time.Time     `json:"date"`
	TimeSlot    string        `json:"timeSlot"`
	Notes       string        `json:"notes"`
	Status      BookingStatus `json:"status"`
	IsNew       bool          `json:"isNew"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`

	Provider *ProviderSummary `json:"provider,omitempty"`
}

// ProviderSummary is the slice of a provider shown next to a client's booking.
type ProviderSummary struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Location string   `json:"location"`
	Phone    string   `json:"phone"`
}

// BookedSlot is the public view of an occupied slot.
type BookedSlot struct {
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
}

// BookingPatch carries the fields of a status update; nil means absent.
type BookingPatch struct {
	Status *BookingStatus
	IsNew  *bool
}
