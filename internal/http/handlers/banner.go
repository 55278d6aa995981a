package handlers

import (
	"net/http"
	"time"

	"github.com/mherrero/mimapa-be/internal/http/respond"
)

// BannerHandler answers the liveness check at the API root.
type BannerHandler struct {
	startedAt time.Time
}

// NewBannerHandler creates the root banner handler.
func NewBannerHandler(startedAt time.Time) *BannerHandler {
	return &BannerHandler{startedAt: startedAt}
}

// Banner reports that the API is up.
func (h *BannerHandler) Banner(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"message": "MiMapa API",
		"uptime":  time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}
