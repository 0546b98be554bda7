// Package handler is the HTTP layer: it resolves the principal from
// the session cookie, decodes request payloads, invokes the lifecycle
// managers and translates their results and error taxonomy into JSON
// responses. No business rule lives here.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/campsite/internal/auth"
	"github.com/dmitrymomot/campsite/internal/campground"
	"github.com/dmitrymomot/campsite/internal/review"
	"github.com/dmitrymomot/campsite/pkg/storage"
)

// sessionCookie carries the opaque session token.
const sessionCookie = "campsite_session"

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth        *auth.Service
	Campgrounds *campground.Service
	Reviews     *review.Service
	Blobs       storage.BlobStorage
	ImagePrefix string
	Log         *slog.Logger
}

// NewRouter builds the chi router with all application routes.
func NewRouter(s Services) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(principalResolver(s.Auth, s.Log))

	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Route("/campgrounds", func(r chi.Router) {
		r.Get("/", s.handleListCampgrounds)
		r.Post("/", s.handleCreateCampground)

		r.Route("/{campgroundID}", func(r chi.Router) {
			r.Get("/", s.handleGetCampground)
			r.Put("/", s.handleUpdateCampground)
			r.Delete("/", s.handleDeleteCampground)

			r.Post("/reviews", s.handleCreateReview)
			r.Delete("/reviews/{reviewID}", s.handleDeleteReview)
		})
	})

	return r
}
