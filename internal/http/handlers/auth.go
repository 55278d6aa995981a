package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mherrero/mimapa-be/internal/auth"
	"github.com/mherrero/mimapa-be/internal/http/respond"
	"github.com/mherrero/mimapa-be/internal/models"
	"github.com/mherrero/mimapa-be/internal/models/dto"
	"github.com/mherrero/mimapa-be/internal/storage"
)

// AuthHandler owns the register and token endpoints.
type AuthHandler struct {
	users     storage.UserStore
	tokens    *auth.TokenManager
	allowRole bool
}

// NewAuthHandler constructs the handler. allowRole enables the role form
// field on registration; when disabled every account is created as a plain
// user.
func NewAuthHandler(users storage.UserStore, tokens *auth.TokenManager, allowRole bool) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, allowRole: allowRole}
}

// Register creates an account from a form-encoded username/password pair.
// The username is unique with a case-sensitive exact match; a collision is
// a client error.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	form := dto.RegisterForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
		Role:     models.RoleUser,
	}
	if h.allowRole {
		if role := strings.TrimSpace(r.PostFormValue("role")); role != "" {
			form.Role = role
		}
	}
	if err := form.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{Username: form.Username, PasswordHash: hash, Role: form.Role}
	if _, err := h.users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusBadRequest, "user already exists")
			return
		}
		log.Error().Err(err).Str("username", form.Username).Msg("create user")
		respond.Error(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "registered"})
}

// Token implements the OAuth2 password grant used by the web client. Bad
// credentials are a 400, matching the wire contract the frontend expects.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	form := dto.TokenForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	if err := form.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.users.FindByUsername(r.Context(), form.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusBadRequest, "incorrect username or password")
			return
		}
		log.Error().Err(err).Str("username", form.Username).Msg("fetch user for login")
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, form.Password) {
		respond.Error(w, http.StatusBadRequest, "incorrect username or password")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		log.Error().Err(err).Str("username", form.Username).Msg("generate token")
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respond.JSON(w, http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}
