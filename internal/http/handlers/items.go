package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mherrero/mimapa-be/internal/geocode"
	"github.com/mherrero/mimapa-be/internal/http/respond"
	"github.com/mherrero/mimapa-be/internal/media"
	"github.com/mherrero/mimapa-be/internal/middleware"
	"github.com/mherrero/mimapa-be/internal/models"
	"github.com/mherrero/mimapa-be/internal/models/dto"
	"github.com/mherrero/mimapa-be/internal/storage"
)

const maxUploadBytes = 16 << 20

// ItemHandler owns item listing, creation, and deletion.
type ItemHandler struct {
	items          storage.ItemStore
	visits         storage.VisitStore
	geo            geocode.Geocoder
	media          media.Uploader
	revision       int
	placeholderURL string
	requireFile    bool
}

// NewItemHandler constructs the handler for the given API revision.
func NewItemHandler(items storage.ItemStore, visits storage.VisitStore, geo geocode.Geocoder, uploads media.Uploader, revision int, placeholderURL string) *ItemHandler {
	return &ItemHandler{
		items:          items,
		visits:         visits,
		geo:            geo,
		media:          uploads,
		revision:       revision,
		placeholderURL: placeholderURL,
		requireFile:    revision >= 2,
	}
}

// List returns map items. Revision 1 scopes the result to one owner
// (defaulting to the caller) and appends a visit record before reading when
// the caller is viewing someone else's map; the two store calls are
// deliberately independent. Revision 2 returns every item unfiltered.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if h.revision >= 2 {
		items, err := h.items.ListItems(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("list items")
			respond.Error(w, http.StatusInternalServerError, "failed to list items")
			return
		}
		respond.JSON(w, http.StatusOK, items)
		return
	}

	owner := strings.TrimSpace(r.URL.Query().Get("owner"))
	if owner == "" {
		owner = user.Username
	}
	if owner != user.Username {
		visit := models.Visit{Host: owner, Visitor: user.Username, VisitedAt: time.Now()}
		if err := h.visits.RecordVisit(r.Context(), visit); err != nil {
			log.Error().Err(err).Str("host", owner).Msg("record visit")
			respond.Error(w, http.StatusInternalServerError, "failed to record visit")
			return
		}
	}

	items, err := h.items.ListItemsByOwner(r.Context(), owner)
	if err != nil {
		log.Error().Err(err).Str("owner", owner).Msg("list items")
		respond.Error(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

// Create stores a new geolocated item owned by the caller. The address is
// geocoded best-effort and a miss pins the item at (0, 0). The photo is
// optional in revision 1 (a placeholder URL stands in) and required in
// revision 2.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		respond.Error(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	form := dto.ItemForm{
		Title:   strings.TrimSpace(r.PostFormValue("title")),
		Address: strings.TrimSpace(r.PostFormValue("address")),
	}
	if err := form.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, "title and address are required")
		return
	}

	imageURL := h.placeholderURL
	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		uploaded, upErr := h.media.Upload(r.Context(), file, header.Filename)
		if upErr != nil {
			log.Error().Err(upErr).Str("filename", header.Filename).Msg("upload image")
			respond.Error(w, http.StatusInternalServerError, fmt.Sprintf("image upload failed: %v", upErr))
			return
		}
		imageURL = uploaded
	case errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart):
		if h.requireFile {
			respond.Error(w, http.StatusBadRequest, "an image file is required")
			return
		}
	default:
		respond.Error(w, http.StatusBadRequest, "invalid file upload")
		return
	}

	lat, lon, err := h.geo.Geocode(r.Context(), form.Address)
	if err != nil {
		// best-effort lookup: a failed geocode pins the item at the origin
		log.Warn().Err(err).Str("address", form.Address).Msg("geocode failed")
		lat, lon = 0, 0
	}

	item := models.Item{
		Title:     form.Title,
		Address:   form.Address,
		ImageURL:  imageURL,
		Latitude:  lat,
		Longitude: lon,
		Owner:     user.Username,
	}
	created, err := h.items.CreateItem(r.Context(), item)
	if err != nil {
		log.Error().Err(err).Str("owner", user.Username).Msg("create item")
		respond.Error(w, http.StatusInternalServerError, "failed to create item")
		return
	}
	respond.JSON(w, http.StatusOK, created)
}

// Delete removes an item by id.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.items.DeleteItem(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "item not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("delete item")
		respond.Error(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
