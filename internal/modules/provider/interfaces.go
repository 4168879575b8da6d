package provider

import (
	"context"

	"github.com/gin-gonic/gin"

	"servic/internal/domain"
)

type ProviderRepository interface {
	Create(ctx context.Context, p *domain.Provider) error
	CreateAndPromote(ctx context.Context, p *domain.Provider, userID int64) error
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error)
	List(ctx context.Context, f domain.ProviderFilter) ([]domain.Provider, error)
	Update(ctx context.Context, p *domain.Provider) error
}

// SessionStarter re-issues the session for a user whose role changed.
type SessionStarter interface {
	StartSession(c *gin.Context, u *domain.User) (string, error)
}
