package ports

import (
	"context"

	"github.com/abc-restaurant/restaurant-gateway/internal/core/domain"
)

// UserRepository persists accounts per role partition. Lookups are strictly
// partition-scoped; Create must fail with domain.ErrUserExists when the
// username is already taken within the same partition (the store enforces
// uniqueness atomically).
type UserRepository interface {
	Create(ctx context.Context, account *domain.UserAccount) (*domain.UserAccount, error)
	FindByUsername(ctx context.Context, role domain.Role, username string) (*domain.UserAccount, error)
}
