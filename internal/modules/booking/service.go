package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"servic/internal/domain"
	"servic/internal/pkg/events"
	"servic/internal/pkg/validator"
	"servic/internal/repository"
)

const maxNotesLength = 1000

type Service struct {
	bookings  BookingRepository
	providers ProviderRepository
	users     UserReader
	notifier  Notifier
	events    events.Publisher
	log       logrus.FieldLogger
	loc       *time.Location
	now       func() time.Time
}

func NewService(
	bookings BookingRepository,
	providers ProviderRepository,
	users UserReader,
	notifier Notifier,
	publisher events.Publisher,
	log logrus.FieldLogger,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.Local
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Service{
		bookings:  bookings,
		providers: providers,
		users:     users,
		notifier:  notifier,
		events:    publisher,
		log:       log,
		loc:       loc,
		now:       time.Now,
	}
}

// CreateBooking books a slot for the actor. The insert itself is the
// availability check: a concurrent booking of the same slot fails with ErrSlotTaken.
func (s *Service) CreateBooking(ctx context.Context, actor domain.Actor, req CreateBookingRequest) (*domain.Booking, error) {
	if req.ProviderID == 0 || strings.TrimSpace(req.Date) == "" ||
		strings.TrimSpace(req.TimeSlot) == "" || strings.TrimSpace(req.ClientPhone) == "" {
		return nil, ErrMissingFields
	}
	if !validator.ValidPhone(req.ClientPhone) {
		return nil, ErrInvalidPhone
	}
	day, ok := domain.ParseDay(req.Date)
	if !ok {
		return nil, ErrInvalidDate
	}
	if day.Before(domain.CalendarDay(s.now(), s.loc)) {
		return nil, ErrPastDate
	}
	slot := strings.TrimSpace(req.TimeSlot)
	if !validator.Clock(slot) {
		return nil, ErrInvalidTimeSlot
	}
	notes := ""
	if req.Notes != nil {
		notes = strings.TrimSpace(*req.Notes)
	}
	if utf8.RuneCountInString(notes) > maxNotesLength {
		return nil, ErrNotesTooLong
	}

	p, err := s.providers.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("load provider %d: %w", req.ProviderID, err)
	}

	// name and email come from the store, not from the token
	client, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("load user %d: %w", actor.UserID, err)
	}

	b := &domain.Booking{
		ProviderID:  p.ID,
		UserID:      client.ID,
		ClientName:  client.Name,
		ClientEmail: client.Email,
		ClientPhone: strings.TrimSpace(req.ClientPhone),
		Date:        day,
		TimeSlot:    slot,
		Notes:       notes,
		Status:      domain.BookingPending,
		IsNew:       true,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.afterCreate(ctx, b, p)
	return b, nil
}

type nopNotifier struct{}

func (nopNotifier) NotifyBookingCreated(context.Context, *domain.Booking, *domain.Provider) error {
	return nil
}

func (nopNotifier) NotifyBookingStatusChanged(context.Context, *domain.Booking, *domain.Provider) error {
	return nil
}

func (s *Service) afterCreate(ctx context.Context, b *domain.Booking, p *domain.Provider) {
	if err := s.notifier.NotifyBookingCreated(ctx, b, p); err != nil {
		s.log.WithError(err).WithField("booking_id", b.ID).Warn("notify provider about new booking")
	}
	if err := s.events.Publish(ctx, events.BookingCreated, newEvent(b, "")); err != nil {
		s.log.WithError(err).WithField("booking_id", b.ID).Warn("publish booking.created")
	}
}

// UpdateBookingStatus moves a booking through its lifecycle and/or clears isNew.
//
// The provider's owner (or an admin) may make any legal transition and clear
// isNew. The client who made the booking may only cancel it. Changing the
// status also clears isNew. The write only applies if the status is still the
// one that was read, so concurrent transitions cannot both win.
func (s *Service) UpdateBookingStatus(ctx context.Context, actor domain.Actor, id int64, req UpdateStatusRequest) (*domain.Booking, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	if req.Status == nil && req.IsNew == nil {
		return nil, ErrEmptyPatch
	}
	if req.IsNew != nil && *req.IsNew {
		return nil, ErrInvalidIsNew
	}

	var target *domain.BookingStatus
	if req.Status != nil {
		st := domain.BookingStatus(strings.ToLower(strings.TrimSpace(*req.Status)))
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
		target = &st
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("load booking %d: %w", id, err)
	}

	p, err := s.providers.GetByID(ctx, b.ProviderID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("load provider %d: %w", b.ProviderID, err)
	}
	managesProvider := actor.IsAdmin() || (p != nil && p.OwnedBy(actor.UserID))

	if !managesProvider {
		if b.UserID != actor.UserID {
			return nil, ErrForbidden
		}
		if req.IsNew != nil || target == nil || *target != domain.BookingCancelled {
			return nil, ErrForbidden
		}
	}

	patch := domain.BookingPatch{IsNew: req.IsNew}
	if target != nil && *target != b.Status {
		if !domain.CanTransition(b.Status, *target) {
			return nil, ErrInvalidTransition
		}
		cleared := false
		patch.Status = target
		patch.IsNew = &cleared
	}
	if patch.Status == nil && patch.IsNew == nil {
		return b, nil
	}

	previous := b.Status
	updated, err := s.bookings.ApplyPatch(ctx, b.ID, previous, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrStale):
			return nil, ErrBookingChanged
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("update booking %d: %w", b.ID, err)
	}

	if patch.Status != nil {
		s.afterStatusChange(ctx, updated, p, previous)
	}
	return updated, nil
}

func (s *Service) afterStatusChange(ctx context.Context, b *domain.Booking, p *domain.Provider, previous domain.BookingStatus) {
	if err := s.notifier.NotifyBookingStatusChanged(ctx, b, p); err != nil {
		s.log.WithError(err).WithField("booking_id", b.ID).Warn("notify client about status change")
	}
	if err := s.events.Publish(ctx, events.BookingStatusChanged, newEvent(b, previous)); err != nil {
		s.log.WithError(err).WithField("booking_id", b.ID).Warn("publish booking.status_changed")
	}
}

// ListBookingsForUser returns the actor's own bookings with a provider summary attached.
func (s *Service) ListBookingsForUser(ctx context.Context, actor domain.Actor) ([]domain.Booking, error) {
	list, err := s.bookings.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]int64, 0, len(list))
	seen := make(map[int64]bool, len(list))
	for _, b := range list {
		if !seen[b.ProviderID] {
			seen[b.ProviderID] = true
			ids = append(ids, b.ProviderID)
		}
	}
	summaries, err := s.providers.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if sum, ok := summaries[list[i].ProviderID]; ok {
			list[i].Provider = &sum
		}
	}
	return list, nil
}

// ListBookingsForProvider returns the bookings of the provider profile the actor
// owns, or an empty list when they own none.
func (s *Service) ListBookingsForProvider(ctx context.Context, actor domain.Actor) ([]domain.Booking, error) {
	p, err := s.providers.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []domain.Booking{}, nil
		}
		return nil, fmt.Errorf("load provider of user %d: %w", actor.UserID, err)
	}
	return s.bookings.ListByProvider(ctx, p.ID)
}

// ListBookedSlots exposes which slots of a provider are taken, without any client data.
func (s *Service) ListBookedSlots(ctx context.Context, providerID int64, date string) ([]domain.BookedSlot, error) {
	if providerID <= 0 {
		return nil, ErrInvalidID
	}
	var day *time.Time
	if strings.TrimSpace(date) != "" {
		d, ok := domain.ParseDay(date)
		if !ok {
			return nil, ErrInvalidDate
		}
		day = &d
	}

	active, err := s.bookings.ListActive(ctx, providerID, day)
	if err != nil {
		return nil, err
	}
	out := make([]domain.BookedSlot, 0, len(active))
	for _, b := range active {
		out = append(out, domain.BookedSlot{Date: domain.FormatDay(b.Date), TimeSlot: b.TimeSlot})
	}
	return out, nil
}
