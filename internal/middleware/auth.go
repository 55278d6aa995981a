package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mherrero/mimapa-be/internal/auth"
	"github.com/mherrero/mimapa-be/internal/http/respond"
	"github.com/mherrero/mimapa-be/internal/models"
	"github.com/mherrero/mimapa-be/internal/storage"
)

type ctxKey int

const userKey ctxKey = 1

// Auth resolves bearer tokens into persisted user records. It is the sole
// gate in front of every protected endpoint.
type Auth struct {
	Tokens *auth.TokenManager
	Users  storage.UserStore
}

// RequireAuth verifies the bearer token, loads the subject's user record,
// and stores it in the request context. Any failure ends the request with
// 401 before the handler runs.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			respond.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		claims, err := a.Tokens.Parse(strings.TrimPrefix(authz, "Bearer "))
		if err != nil || claims.Subject == "" {
			respond.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		user, err := a.Users.FindByUsername(r.Context(), claims.Subject)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				log.Error().Err(err).Str("subject", claims.Subject).Msg("resolve identity")
				respond.Error(w, http.StatusInternalServerError, "failed to resolve identity")
				return
			}
			respond.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects resolved users without the admin role. It must be
// stacked after RequireAuth.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFrom(r.Context())
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		if !auth.CanWrite(user) {
			respond.Error(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFrom returns the authenticated user stored by RequireAuth.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}
