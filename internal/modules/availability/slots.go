package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"servic/internal/domain"
)

const (
	defaultStartHour = 9
	defaultEndHour   = 17

	// BookingBuffer is how far ahead of now a same-day slot must start to be offered.
	BookingBuffer = 30 * time.Minute
)

// GenerateSlots lists the half-hour slots of a working day. Every hour from
// start to end gets ":00", every hour before end also gets ":30". Minutes of the
// configured bounds are ignored. Missing, malformed or inverted hours fall back
// to 09:00-17:00.
func GenerateSlots(wh *domain.WorkingHours) []string {
	start, end := defaultStartHour, defaultEndHour
	if wh != nil {
		s, okS := parseHour(wh.Start)
		e, okE := parseHour(wh.End)
		if okS && okE && s <= e {
			start, end = s, e
		}
	}

	slots := make([]string, 0, (end-start)*2+1)
	for h := start; h <= end; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
		if h < end {
			slots = append(slots, fmt.Sprintf("%02d:30", h))
		}
	}
	return slots
}

func parseHour(clock string) (int, bool) {
	hh, _, ok := strings.Cut(strings.TrimSpace(clock), ":")
	if !ok {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

// SlotStart resolves a "HH:MM" slot on a stored calendar day to an instant in loc.
func SlotStart(day time.Time, slot string, loc *time.Location) (time.Time, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(slot))
	if err != nil {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := day.UTC().Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), true
}

// FilterPastSlots drops today's slots that start within BookingBuffer of now;
// a slot exactly BookingBuffer away is dropped too. Other days pass through.
func FilterPastSlots(slots []string, day, now time.Time, loc *time.Location) []string {
	if !domain.CalendarDay(now, loc).Equal(domain.CalendarDay(day, time.UTC)) {
		return slots
	}

	cutoff := now.Add(BookingBuffer)
	out := make([]string, 0, len(slots))
	for _, slot := range slots {
		start, ok := SlotStart(day, slot, loc)
		if ok && start.After(cutoff) {
			out = append(out, slot)
		}
	}
	return out
}

// IsSlotTaken reports whether an active booking holds slot on day.
func IsSlotTaken(bookings []domain.Booking, day time.Time, slot string) bool {
	want := domain.FormatDay(day)
	for _, b := range bookings {
		if b.Status.Active() && b.TimeSlot == slot && domain.FormatDay(b.Date) == want {
			return true
		}
	}
	return false
}
