// Package auth is the identity provider: user registration, password
// authentication and session-token resolution. It produces the
// principal that every lifecycle operation receives explicitly; nothing
// downstream reads ambient session state.
package auth

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrUsernameTaken      = errors.New("auth: username already taken")
	ErrInvalidCredentials = errors.New("auth: invalid username or password")
	ErrSessionNotFound    = errors.New("auth: session not found")
)

// User is a registered account. PasswordHash is opaque to everything
// outside this package.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// UserStore is the persistent store for users. Users are never deleted
// by the application.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// SessionStore maps opaque session tokens to user identifiers with a
// TTL. Get returns ErrSessionNotFound for unknown or expired tokens.
type SessionStore interface {
	Put(ctx context.Context, token, userID string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}
