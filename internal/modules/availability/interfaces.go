package availability

import (
	"context"
	"time"

	"servic/internal/domain"
)

type ProviderReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

type BookingReader interface {
	ListActive(ctx context.Context, providerID int64, day *time.Time) ([]domain.Booking, error)
}
