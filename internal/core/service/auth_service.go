package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/abc-restaurant/restaurant-gateway/internal/core/domain"
	"github.com/abc-restaurant/restaurant-gateway/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// AuthService implements registration, login, and logout. One instance
// serves all three partitions; the role argument selects the credential
// namespace on every call.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	hasher     ports.PasswordHasher
	sessionTTL time.Duration
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, hasher ports.PasswordHasher, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{users: users, sessions: sessions, hasher: hasher, sessionTTL: sessionTTL}
}

// Register hashes the password and persists the account in the partition
// named by role. The plaintext exists only for the duration of this call.
func (s *AuthService) Register(ctx context.Context, role domain.Role, input ports.RegisterInput) (*domain.UserAccount, error) {
	if input.Username == "" || input.Password == "" || !role.Valid() {
		return nil, domain.ErrValidation
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.UserAccount{
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.users.Create(ctx, account)
}

// Login verifies the credential strictly within the given partition and, on
// success, creates a session scoped to it. A missing user and a wrong
// password both surface as ErrInvalidCredentials so responses cannot be used
// to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, role domain.Role, username, password string) (*domain.Session, error) {
	if username == "" || password == "" || !role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.users.FindByUsername(ctx, role, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		Username:  account.Username,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessions.Save(ctx, session, s.sessionTTL); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout destroys the session. Unknown IDs are ignored so repeated logouts
// are harmless.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}
