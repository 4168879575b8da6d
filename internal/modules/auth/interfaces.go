package auth

import (
	"context"

	"servic/internal/domain"
)

// UserRepository is the slice of the identity store the auth service uses.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type tokenIssuer interface {
	GenerateToken(userID int64, email, name, role string) (string, error)
}
