package handlers

import (
	"net/http"

	"github.com/mherrero/mimapa-be/internal/http/respond"
	"github.com/mherrero/mimapa-be/internal/middleware"
	"github.com/mherrero/mimapa-be/internal/models/dto"
)

// UserHandler serves the current-user endpoint.
type UserHandler struct{}

// Me returns the authenticated caller's username and role.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	respond.JSON(w, http.StatusOK, dto.MeResponse{Username: user.Username, Role: user.Role})
}
