package domain

import (
	"errors"
	"strings"
	"time"
)

// Role partitions credentials and protected routes. A credential stored in
// one partition never authenticates against another partition's routes.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrValidation = errors.New("invalid payload")
var ErrSessionNotFound = errors.New("session not found")
var ErrUnauthenticated = errors.New("authentication required")

// ParseRole converts a string to a Role.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleStaff:
		return RoleStaff, nil
	}
	return "", ErrValidation
}

// Valid reports whether r is one of the three declared partitions.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleStaff
}

// UserAccount models a registered account inside one role partition.
// The password hash never leaves the process: json:"-" keeps it out of
// every response body.
type UserAccount struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	FullName     string    `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
