package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"servic/internal/domain"
	"servic/internal/pkg/mailer"
)

const mailTimeout = 15 * time.Second

// Pusher delivers realtime events to connected users.
type Pusher interface {
	Push(userID int64, event Event) bool
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier tells clients and providers about booking changes, over the
// websocket when they are connected and by email when mail is configured.
// Mail goes out in the background; Wait blocks until it has been handed off.
type Notifier struct {
	pusher Pusher
	mail   mailer.Sender
	users  UserReader
	log    logrus.FieldLogger
	wg     sync.WaitGroup
}

func NewNotifier(pusher Pusher, mail mailer.Sender, users UserReader, log logrus.FieldLogger) *Notifier {
	if mail == nil {
		mail = mailer.Nop{}
	}
	return &Notifier{pusher: pusher, mail: mail, users: users, log: log}
}

var errMissingBooking = errors.New("notification: booking and provider are required")

// NotifyBookingCreated alerts the provider's owner about a new request.
func (n *Notifier) NotifyBookingCreated(ctx context.Context, b *domain.Booking, p *domain.Provider) error {
	if b == nil || p == nil {
		return errMissingBooking
	}
	if p.UserID != nil {
		n.pusher.Push(*p.UserID, NewEvent(EventBookingCreated, b))
	}
	n.mailProvider(ctx, p,
		"New booking request",
		fmt.Sprintf("%s requested %s at %s.\nPhone: %s\nNotes: %s",
			b.ClientName, domain.FormatDay(b.Date), b.TimeSlot, b.ClientPhone, orDash(b.Notes)),
	)
	return nil
}

// NotifyBookingStatusChanged tells the client where their booking stands and keeps
// the provider owner's dashboard in sync. Owners are also mailed about cancellations.
func (n *Notifier) NotifyBookingStatusChanged(ctx context.Context, b *domain.Booking, p *domain.Provider) error {
	if b == nil {
		return errMissingBooking
	}
	event := NewEvent(EventBookingStatusChanged, b)
	n.pusher.Push(b.UserID, event)
	if p != nil && p.UserID != nil && *p.UserID != b.UserID {
		n.pusher.Push(*p.UserID, event)
	}

	who := "your provider"
	if p != nil {
		who = p.Name
	}
	n.mailTo(ctx, b.ClientEmail,
		fmt.Sprintf("Your booking is %s", b.Status),
		fmt.Sprintf("Your booking with %s on %s at %s is now %s.",
			who, domain.FormatDay(b.Date), b.TimeSlot, b.Status),
	)
	if p != nil && b.Status == domain.BookingCancelled {
		n.mailProvider(ctx, p, "Booking cancelled",
			fmt.Sprintf("The booking by %s on %s at %s was cancelled.",
				b.ClientName, domain.FormatDay(b.Date), b.TimeSlot))
	}
	return nil
}

// NotifyReminder reminds both sides of a confirmed booking that is about to start.
func (n *Notifier) NotifyReminder(ctx context.Context, b *domain.Booking, p *domain.Provider) error {
	if b == nil || p == nil {
		return errMissingBooking
	}
	event := NewEvent(EventBookingReminder, b)
	n.pusher.Push(b.UserID, event)
	if p.UserID != nil {
		n.pusher.Push(*p.UserID, event)
	}

	when := fmt.Sprintf("%s at %s", domain.FormatDay(b.Date), b.TimeSlot)
	n.mailTo(ctx, b.ClientEmail, "Upcoming appointment",
		fmt.Sprintf("Reminder: your appointment with %s is on %s.", p.Name, when))
	n.mailProvider(ctx, p, "Upcoming appointment",
		fmt.Sprintf("Reminder: %s is booked with you on %s.", b.ClientName, when))
	return nil
}

// Wait blocks until queued mail has been sent or has failed.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

// mailProvider writes to the profile email, or to the owner's account email.
func (n *Notifier) mailProvider(ctx context.Context, p *domain.Provider, subject, text string) {
	to := p.Email
	if to == "" && p.UserID != nil && n.users != nil {
		u, err := n.users.GetByID(ctx, *p.UserID)
		if err != nil {
			n.log.WithError(err).WithField("provider_id", p.ID).Warn("look up provider owner email")
			return
		}
		to = u.Email
	}
	n.mailTo(ctx, to, subject, text)
}

func (n *Notifier) mailTo(ctx context.Context, to, subject, text string) {
	if to == "" {
		return
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mailTimeout)
		defer cancel()
		if err := n.mail.Send(mctx, to, subject, text); err != nil {
			n.log.WithError(err).WithField("subject", subject).Warn("send notification email")
		}
	}()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
