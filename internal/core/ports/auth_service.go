package ports

import (
	"context"

	"github.com/abc-restaurant/restaurant-gateway/internal/core/domain"
)

// RegisterInput carries the signup payload into the service layer. Profile
// fields are optional and role-irrelevant.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	FullName string
}

// AuthService implements registration, login, and logout for all three
// partitions through a single pipeline parameterized by role.
type AuthService interface {
	Register(ctx context.Context, role domain.Role, input RegisterInput) (*domain.UserAccount, error)
	Login(ctx context.Context, role domain.Role, username, password string) (*domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
}
