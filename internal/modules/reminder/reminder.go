// Package reminder notifies both sides of a confirmed booking shortly before it starts.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"servic/internal/domain"
	"servic/internal/repository"
)

type BookingFinder interface {
	ListConfirmedAt(ctx context.Context, day time.Time, slot string) ([]domain.Booking, error)
}

type ProviderReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

type Notifier interface {
	NotifyReminder(ctx context.Context, b *domain.Booking, p *domain.Provider) error
}

type Job struct {
	bookings  BookingFinder
	providers ProviderReader
	notifier  Notifier
	lead      time.Duration
	loc       *time.Location
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewJob(bookings BookingFinder, providers ProviderReader, notifier Notifier, lead time.Duration, loc *time.Location, log logrus.FieldLogger) *Job {
	if loc == nil {
		loc = time.Local
	}
	return &Job{
		bookings:  bookings,
		providers: providers,
		notifier:  notifier,
		lead:      lead,
		loc:       loc,
		log:       log,
		now:       time.Now,
	}
}

// Target is the day and slot that start lead after the current minute.
func (j *Job) Target() (time.Time, string) {
	at := j.now().In(j.loc).Truncate(time.Minute).Add(j.lead)
	return domain.CalendarDay(at, j.loc), at.Format("15:04")
}

// RunOnce sends reminders for the bookings starting at Target and returns how many went out.
func (j *Job) RunOnce(ctx context.Context) (int, error) {
	day, slot := j.Target()
	list, err := j.bookings.ListConfirmedAt(ctx, day, slot)
	if err != nil {
		return 0, err
	}

	providers := make(map[int64]*domain.Provider)
	sent := 0
	for i := range list {
		b := &list[i]
		p, ok := providers[b.ProviderID]
		if !ok {
			p, err = j.providers.GetByID(ctx, b.ProviderID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return sent, fmt.Errorf("load provider %d: %w", b.ProviderID, err)
			}
			providers[b.ProviderID] = p
		}
		if p == nil {
			j.log.WithField("booking_id", b.ID).Warn("reminder skipped: provider missing")
			continue
		}
		if err := j.notifier.NotifyReminder(ctx, b, p); err != nil {
			j.log.WithError(err).WithField("booking_id", b.ID).Warn("send reminder")
			continue
		}
		sent++
	}
	return sent, nil
}

// Schedule registers the job on a new cron scheduler. The caller starts and stops it.
func (j *Job) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(j.loc))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Second)
		defer cancel()

		n, err := j.RunOnce(ctx)
		if err != nil {
			j.log.WithError(err).Error("reminder run failed")
			return
		}
		if n > 0 {
			j.log.WithField("sent", n).Info("booking reminders sent")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule reminders %q: %w", spec, err)
	}
	return c, nil
}
