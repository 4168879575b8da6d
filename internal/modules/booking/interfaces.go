package booking

import (
	"context"
	"time"

	"servic/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListByProvider(ctx context.Context, providerID int64) ([]domain.Booking, error)
	ListActive(ctx context.Context, providerID int64, day *time.Time) ([]domain.Booking, error)
	ApplyPatch(ctx context.Context, id int64, expected domain.BookingStatus, patch domain.BookingPatch) (*domain.Booking, error)
}

type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error)
	Summaries(ctx context.Context, ids []int64) (map[int64]domain.ProviderSummary, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier tells the people involved in a booking that something happened.
type Notifier interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking, p *domain.Provider) error
	NotifyBookingStatusChanged(ctx context.Context, b *domain.Booking, p *domain.Provider) error
}
