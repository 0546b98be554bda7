package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/campsite/internal/auth"
	"github.com/dmitrymomot/campsite/pkg/validator"
)

func newService(t *testing.T, ttl time.Duration) *auth.Service {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(auth.NewMemoryUserStore(), auth.NewMemorySessionStore(), ttl, log)
}

func TestRegister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates account and opens a session", func(t *testing.T) {
		t.Parallel()
		svc := newService(t, 0)

		p, token, err := svc.Register(ctx, "camper", "camper@example.com", "s3cret-pass")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.Equal(t, "camper", p.Username)

		resolved, err := svc.CurrentPrincipal(ctx, token)
		require.NoError(t, err)
		require.NotNil(t, resolved)
		assert.Equal(t, p.ID, resolved.ID)
	})

	t.Run("reports all field violations at once", func(t *testing.T) {
		t.Parallel()
		svc := newService(t, 0)

		_, _, err := svc.Register(ctx, "", "not-an-email", "short")
		require.Error(t, err)

		ve := validator.ExtractValidationErrors(err)
		require.NotNil(t, ve)
		assert.True(t, ve.Has("username"))
		assert.True(t, ve.Has("email"))
		assert.True(t, ve.Has("password"))
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		t.Parallel()
		svc := newService(t, 0)

		_, _, err := svc.Register(ctx, "camper", "a@example.com", "s3cret-pass")
		require.NoError(t, err)

		_, _, err = svc.Register(ctx, "camper", "b@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, auth.ErrUsernameTaken)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		svc := newService(t, 0)
		_, _, err := svc.Register(ctx, "camper", "camper@example.com", "s3cret-pass")
		require.NoError(t, err)

		p, token, err := svc.Authenticate(ctx, "camper", "s3cret-pass")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "camper", p.Username)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		t.Parallel()
		svc := newService(t, 0)
		_, _, err := svc.Register(ctx, "camper", "camper@example.com", "s3cret-pass")
		require.NoError(t, err)

		_, _, errWrongPass := svc.Authenticate(ctx, "camper", "wrong-pass")
		_, _, errNoUser := svc.Authenticate(ctx, "nobody", "s3cret-pass")
		assert.ErrorIs(t, errWrongPass, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, errNoUser, auth.ErrInvalidCredentials)
	})
}

func TestCurrentPrincipal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("empty token resolves to no principal", func(t *testing.T) {
		t.Parallel()
		svc := newService(t, 0)

		p, err := svc.CurrentPrincipal(ctx, "")
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("unknown token resolves to no principal", func(t *testing.T) {
		t.Parallel()
		svc := newService(t, 0)

		p, err := svc.CurrentPrincipal(ctx, "bogus-token")
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("expired session resolves to no principal", func(t *testing.T) {
		t.Parallel()
		svc := newService(t, time.Nanosecond)

		_, token, err := svc.Register(ctx, "camper", "camper@example.com", "s3cret-pass")
		require.NoError(t, err)

		time.Sleep(time.Millisecond)

		p, err := svc.CurrentPrincipal(ctx, token)
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("logout invalidates the token", func(t *testing.T) {
		t.Parallel()
		svc := newService(t, 0)

		_, token, err := svc.Register(ctx, "camper", "camper@example.com", "s3cret-pass")
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, token))

		p, err := svc.CurrentPrincipal(ctx, token)
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}
