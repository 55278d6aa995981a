package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mherrero/mimapa-be/internal/http/respond"
	"github.com/mherrero/mimapa-be/internal/middleware"
	"github.com/mherrero/mimapa-be/internal/models/dto"
	"github.com/mherrero/mimapa-be/internal/storage"
)

// VisitHandler serves the caller's received-visits feed.
type VisitHandler struct {
	visits storage.VisitStore
}

// NewVisitHandler constructs the handler.
func NewVisitHandler(visits storage.VisitStore) *VisitHandler {
	return &VisitHandler{visits: visits}
}

// MyVisits lists who viewed the caller's map, newest first.
func (h *VisitHandler) MyVisits(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	visits, err := h.visits.ListVisitsForHost(r.Context(), user.Username)
	if err != nil {
		log.Error().Err(err).Str("host", user.Username).Msg("list visits")
		respond.Error(w, http.StatusInternalServerError, "failed to list visits")
		return
	}

	out := make([]dto.VisitResponse, 0, len(visits))
	for _, v := range visits {
		out = append(out, dto.VisitResponse{Visitor: v.Visitor, Timestamp: v.VisitedAt})
	}
	respond.JSON(w, http.StatusOK, out)
}
