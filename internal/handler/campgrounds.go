package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/campsite/internal/campground"
	"github.com/dmitrymomot/campsite/pkg/storage"
	"github.com/dmitrymomot/campsite/pkg/validator"
)

// maxUploadMemory bounds the in-memory part of multipart parsing.
const maxUploadMemory = 32 << 20 // 32MB

type imageResponse struct {
	URL    string `json:"url"`
	Handle string `json:"handle"`
}

type campgroundResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Location    string          `json:"location"`
	Longitude   float64         `json:"longitude"`
	Latitude    float64         `json:"latitude"`
	Price       float64         `json:"price"`
	Description string          `json:"description"`
	Images      []imageResponse `json:"images"`
	AuthorID    string          `json:"author_id"`
	ReviewIDs   []string        `json:"review_ids"`
}

func toCampgroundResponse(c *campground.Campground) campgroundResponse {
	images := make([]imageResponse, 0, len(c.Images))
	for _, img := range c.Images {
		images = append(images, imageResponse{URL: img.URL, Handle: img.Handle})
	}
	reviewIDs := c.ReviewIDs
	if reviewIDs == nil {
		reviewIDs = []string{}
	}
	return campgroundResponse{
		ID:          c.ID,
		Title:       c.Title,
		Location:    c.Location,
		Longitude:   c.Geometry.Longitude,
		Latitude:    c.Geometry.Latitude,
		Price:       c.Price,
		Description: c.Description,
		Images:      images,
		AuthorID:    c.AuthorID,
		ReviewIDs:   reviewIDs,
	}
}

// campgroundForm extracts the scalar fields from a multipart form.
func campgroundForm(r *http.Request) (campground.Input, error) {
	raw := r.FormValue("price")
	if raw == "" {
		return campground.Input{}, validator.ValidationErrors{{Field: "price", Message: "is required"}}
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return campground.Input{}, validator.ValidationErrors{{Field: "price", Message: "must be a number"}}
	}

	return campground.Input{
		Title:       r.FormValue("title"),
		Location:    r.FormValue("location"),
		Price:       price,
		Description: r.FormValue("description"),
	}, nil
}

// uploadImages stores every file under the "images" field and returns
// the resulting image references. A file whose upload fails is logged
// and skipped: the lifecycle manager never sees it, and blobs already
// uploaded stay where they are.
func (s Services) uploadImages(r *http.Request) []campground.Image {
	if r.MultipartForm == nil {
		return nil
	}

	var images []campground.Image
	for _, fh := range r.MultipartForm.File["images"] {
		obj, err := storage.UploadFile(r.Context(), s.Blobs, fh, s.ImagePrefix)
		if err != nil {
			s.Log.WarnContext(r.Context(), "image upload failed",
				slog.String("filename", fh.Filename),
				slog.String("error", err.Error()))
			continue
		}
		images = append(images, campground.Image{URL: obj.URL, Handle: obj.Handle})
	}
	return images
}

func (s Services) handleListCampgrounds(w http.ResponseWriter, r *http.Request) {
	list, err := s.Campgrounds.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]campgroundResponse, 0, len(list))
	for _, c := range list {
		resp = append(resp, toCampgroundResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s Services) handleGetCampground(w http.ResponseWriter, r *http.Request) {
	c, err := s.Campgrounds.Get(r.Context(), chi.URLParam(r, "campgroundID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCampgroundResponse(c))
}

func (s Services) handleCreateCampground(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.writeError(w, r, validator.ValidationErrors{{Field: "body", Message: "must be a multipart form"}})
		return
	}

	in, err := campgroundForm(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	c, err := s.Campgrounds.Create(r.Context(), principalFrom(r), in, s.uploadImages(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCampgroundResponse(c))
}

func (s Services) handleUpdateCampground(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.writeError(w, r, validator.ValidationErrors{{Field: "body", Message: "must be a multipart form"}})
		return
	}

	in, err := campgroundForm(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var deleteHandles []string
	if r.MultipartForm != nil {
		deleteHandles = r.MultipartForm.Value["deleteImages"]
	}

	c, err := s.Campgrounds.Update(r.Context(), principalFrom(r),
		chi.URLParam(r, "campgroundID"), in, s.uploadImages(r), deleteHandles)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCampgroundResponse(c))
}

func (s Services) handleDeleteCampground(w http.ResponseWriter, r *http.Request) {
	if err := s.Campgrounds.Delete(r.Context(), principalFrom(r), chi.URLParam(r, "campgroundID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
