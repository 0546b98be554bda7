package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/campsite/internal/review"
)

type reviewRequest struct {
	Body   string `json:"body"`
	Rating int    `json:"rating"`
}

type reviewResponse struct {
	ID           string    `json:"id"`
	Body         string    `json:"body"`
	Rating       int       `json:"rating"`
	AuthorID     string    `json:"author_id"`
	CampgroundID string    `json:"campground_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func toReviewResponse(r *review.Review) reviewResponse {
	return reviewResponse{
		ID:           r.ID,
		Body:         r.Body,
		Rating:       r.Rating,
		AuthorID:     r.AuthorID,
		CampgroundID: r.CampgroundID,
		CreatedAt:    r.CreatedAt,
	}
}

func (s Services) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	rev, err := s.Reviews.Create(r.Context(), principalFrom(r),
		chi.URLParam(r, "campgroundID"), review.Input{Body: req.Body, Rating: req.Rating})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReviewResponse(rev))
}

func (s Services) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	err := s.Reviews.Delete(r.Context(), principalFrom(r),
		chi.URLParam(r, "campgroundID"), chi.URLParam(r, "reviewID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
