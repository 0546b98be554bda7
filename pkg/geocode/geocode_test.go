package geocode_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/campsite/pkg/geocode"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *geocode.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := geocode.New(geocode.Config{
		AccessToken: "test-token",
		BaseURL:     srv.URL,
	})
	require.NoError(t, err)
	return client
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires access token", func(t *testing.T) {
		t.Parallel()
		_, err := geocode.New(geocode.Config{})
		assert.ErrorIs(t, err, geocode.ErrInvalidConfig)
	})
}

func TestClientForward(t *testing.T) {
	t.Parallel()

	t.Run("parses matches best-first", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Path, "/geocoding/v5/mapbox.places/Yosemite.json")
			assert.Equal(t, "test-token", r.URL.Query().Get("access_token"))
			assert.Equal(t, "1", r.URL.Query().Get("limit"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"features":[{"place_name":"Yosemite National Park","relevance":0.98,"center":[-119.5383,37.8651]}]}`))
		})

		matches, err := client.Forward(context.Background(), "Yosemite", 1)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Yosemite National Park", matches[0].PlaceName)
		assert.InDelta(t, -119.5383, matches[0].Point.Longitude, 1e-9)
		assert.InDelta(t, 37.8651, matches[0].Point.Latitude, 1e-9)
		assert.InDelta(t, 0.98, matches[0].Confidence, 1e-9)
	})

	t.Run("no match yields empty slice without error", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"features":[]}`))
		})

		matches, err := client.Forward(context.Background(), "nowhereville-zzz", 1)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("non-200 is a bad response", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := client.Forward(context.Background(), "Yosemite", 1)
		assert.ErrorIs(t, err, geocode.ErrBadResponse)
	})

	t.Run("malformed body is a bad response", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"features":`))
		})

		_, err := client.Forward(context.Background(), "Yosemite", 1)
		assert.ErrorIs(t, err, geocode.ErrBadResponse)
	})

	t.Run("cancelled context surfaces as request failure", func(t *testing.T) {
		t.Parallel()
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"features":[]}`))
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.Forward(ctx, "Yosemite", 1)
		assert.ErrorIs(t, err, geocode.ErrRequestFailed)
	})
}
