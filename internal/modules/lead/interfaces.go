package lead

import (
	"context"

	"servic/internal/domain"
)

type LeadRepository interface {
	Create(ctx context.Context, l *domain.Lead) error
	CountByType(ctx context.Context, providerID int64) (domain.LeadStats, error)
}

type ProviderReader interface {
	Exists(ctx context.Context, id int64) (bool, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error)
}
