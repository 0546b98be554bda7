package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/campsite/internal/authz"
	"github.com/dmitrymomot/campsite/pkg/sanitizer"
	"github.com/dmitrymomot/campsite/pkg/validator"
)

// DefaultSessionTTL matches the original session cookie lifetime.
const DefaultSessionTTL = 4 * time.Hour

// Service implements the identity provider operations.
type Service struct {
	users    UserStore
	sessions SessionStore
	ttl      time.Duration
	log      *slog.Logger
}

// NewService creates the identity provider. A non-positive ttl falls
// back to DefaultSessionTTL.
func NewService(users UserStore, sessions SessionStore, ttl time.Duration, log *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Service{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		log:      log,
	}
}

// Register creates a new account and opens a session for it, returning
// the principal and the session token.
func (s *Service) Register(ctx context.Context, username, email, password string) (*authz.Principal, string, error) {
	username = sanitizer.StripHTML(username)

	err := validator.Apply(
		validator.RequiredString("username", username),
		validator.MaxLenString("username", username, 40),
		validator.RequiredString("email", email),
		validator.ValidEmail("email", email),
		validator.RequiredString("password", password),
		validator.MinLenString("password", password, 8),
	)
	if err != nil {
		return nil, "", err
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("auth: failed to hash password: %w", err)
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	s.log.InfoContext(ctx, "user registered", slog.String("user_id", u.ID))

	return s.openSession(ctx, u)
}

// Authenticate verifies the credentials and opens a session. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*authz.Principal, string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	return s.openSession(ctx, u)
}

// CurrentPrincipal resolves a session token to a principal. A missing,
// expired or dangling session yields (nil, nil): no principal, no error.
func (s *Service) CurrentPrincipal(ctx context.Context, token string) (*authz.Principal, error) {
	if token == "" {
		return nil, nil
	}

	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &authz.Principal{ID: u.ID, Username: u.Username}, nil
}

// Logout drops the session addressed by token. Unknown tokens are a
// no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

func (s *Service) openSession(ctx context.Context, u *User) (*authz.Principal, string, error) {
	token := uuid.NewString()
	if err := s.sessions.Put(ctx, token, u.ID, s.ttl); err != nil {
		return nil, "", err
	}
	return &authz.Principal{ID: u.ID, Username: u.Username}, token, nil
}
