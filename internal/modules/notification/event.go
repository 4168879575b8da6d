package notification

import "time"

// Event types pushed over the websocket.
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingReminder      = "booking.reminder"
)

// Event is one realtime message for a connected user.
type Event struct {
	Type    string    `json:"type"`
	Payload any       `json:"payload,omitempty"`
	SentAt  time.Time `json:"sentAt"`
}

func NewEvent(typ string, payload any) Event {
	return Event{Type: typ, Payload: payload, SentAt: time.Now().UTC()}
}
