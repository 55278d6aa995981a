package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/mherrero/mimapa-be/internal/auth"
	"github.com/mherrero/mimapa-be/internal/config"
	"github.com/mherrero/mimapa-be/internal/geocode"
	"github.com/mherrero/mimapa-be/internal/http/handlers"
	"github.com/mherrero/mimapa-be/internal/media"
	"github.com/mherrero/mimapa-be/internal/middleware"
	"github.com/mherrero/mimapa-be/internal/storage"
)

// Stores groups the persistence interfaces the API needs.
type Stores struct {
	Users  storage.UserStore
	Items  storage.ItemStore
	Visits storage.VisitStore
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, stores Stores, geo geocode.Geocoder, uploads media.Uploader) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Routes(cfg, stores, tokens, geo, uploads),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Routes builds the handler tree for the configured API revision. It is
// split from New so tests can mount it on an httptest server.
func Routes(cfg config.Config, stores Stores, tokens *auth.TokenManager, geo geocode.Geocoder, uploads media.Uploader) http.Handler {
	authHandler := handlers.NewAuthHandler(stores.Users, tokens, cfg.APIRevision >= 2)
	itemHandler := handlers.NewItemHandler(stores.Items, stores.Visits, geo, uploads, cfg.APIRevision, cfg.PlaceholderImageURL)
	guard := &middleware.Auth{Tokens: tokens, Users: stores.Users}

	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Post("/register", authHandler.Register)
	r.Post("/token", authHandler.Token)

	if cfg.APIRevision >= 2 {
		banner := handlers.NewBannerHandler(time.Now())
		r.Get("/", banner.Banner)

		r.Group(func(r chi.Router) {
			r.Use(guard.RequireAuth)
			r.Get("/users/me", (&handlers.UserHandler{}).Me)
			r.Get("/items", itemHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(guard.RequireAdmin)
				r.Post("/items", itemHandler.Create)
				r.Delete("/items/{id}", itemHandler.Delete)
			})
		})
		return r
	}

	visitHandler := handlers.NewVisitHandler(stores.Visits)
	r.Group(func(r chi.Router) {
		r.Use(guard.RequireAuth)
		r.Get("/items", itemHandler.List)
		r.Post("/items", itemHandler.Create)
		r.Get("/my-visits", visitHandler.MyVisits)
	})
	return r
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
