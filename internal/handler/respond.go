package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/campsite/internal/auth"
	"github.com/dmitrymomot/campsite/internal/authz"
	"github.com/dmitrymomot/campsite/internal/campground"
	"github.com/dmitrymomot/campsite/internal/review"
	"github.com/dmitrymomot/campsite/pkg/validator"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields []fieldViolation  `json:"fields,omitempty"`
	Images *imageDeleteState `json:"images,omitempty"`
}

type fieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// imageDeleteState reports the outcome of a partially failed image
// removal so the client can retry exactly the failed subset.
type imageDeleteState struct {
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the application error taxonomy onto HTTP responses.
// Everything in the taxonomy is recoverable; only unclassified errors
// become opaque 500s.
func (s Services) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if ve := validator.ExtractValidationErrors(err); ve != nil {
		fields := make([]fieldViolation, 0, len(ve))
		for _, v := range ve {
			fields = append(fields, fieldViolation{Field: v.Field, Message: v.Message})
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: fields})
		return
	}

	var delErr *campground.ImageDeleteError
	if errors.As(err, &delErr) {
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error: "some images could not be deleted",
			Images: &imageDeleteState{
				Deleted: delErr.Deleted,
				Failed:  delErr.FailedHandles(),
			},
		})
		return
	}

	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid username or password"})
	case errors.Is(err, authz.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "you do not have permission to do that"})
	case errors.Is(err, campground.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "campground not found"})
	case errors.Is(err, review.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "review not found"})
	case errors.Is(err, auth.ErrUsernameTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "username already taken"})
	case errors.Is(err, campground.ErrGeocodeFailed):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "location could not be geocoded"})
	case errors.Is(err, campground.ErrDuplicateHandle):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "duplicate image upload"})
	default:
		s.Log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "something went wrong"})
	}
}
