package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servic/internal/domain"
	"servic/internal/repository"
)

type Service struct {
	providers ProviderReader
	bookings  BookingReader
	loc       *time.Location
	now       func() time.Time
}

func NewService(providers ProviderReader, bookings BookingReader, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{providers: providers, bookings: bookings, loc: loc, now: time.Now}
}

// GetAvailability lists the bookable slots of a provider on one day, marking
// the ones held by pending or confirmed bookings.
func (s *Service) GetAvailability(ctx context.Context, providerID int64, date string) (*DayAvailability, error) {
	if providerID <= 0 {
		return nil, ErrInvalidProviderID
	}
	day, ok := domain.ParseDay(date)
	if !ok {
		return nil, ErrInvalidDate
	}
	now := s.now()
	if day.Before(domain.CalendarDay(now, s.loc)) {
		return nil, ErrPastDate
	}

	p, err := s.providers.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("load provider %d: %w", providerID, err)
	}

	out := &DayAvailability{
		ProviderID:   p.ID,
		Date:         domain.FormatDay(day),
		WorkingHours: p.WorkingHours,
		WorkingDay:   p.WorkingHours.WorksOn(day.Weekday()),
		Slots:        []Slot{},
	}
	if !out.WorkingDay {
		return out, nil
	}

	active, err := s.bookings.ListActive(ctx, p.ID, &day)
	if err != nil {
		return nil, fmt.Errorf("load bookings of provider %d: %w", p.ID, err)
	}

	for _, slot := range FilterPastSlots(GenerateSlots(p.WorkingHours), day, now, s.loc) {
		out.Slots = append(out.Slots, Slot{Time: slot, Booked: IsSlotTaken(active, day, slot)})
	}
	return out, nil
}
