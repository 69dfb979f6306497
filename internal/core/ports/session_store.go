package ports

import (
	"context"
	"time"

	"github.com/abc-restaurant/restaurant-gateway/internal/core/domain"
)

// SessionStore persists sessions keyed by ID with a TTL. Get must return
// domain.ErrSessionNotFound for unknown or expired IDs; Delete on a missing
// ID is a no-op.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
