package admin

import (
	"context"

	"servic/internal/domain"
	"servic/internal/modules/notification"
)

type ProviderModerator interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	ListUnverified(ctx context.Context, offset, limit int) ([]domain.Provider, int64, error)
	SetVerified(ctx context.Context, id int64, verified bool) error
}

type StatsReader interface {
	PlatformStats(ctx context.Context) (domain.PlatformStats, error)
}

type Pusher interface {
	Push(userID int64, event notification.Event) bool
}
