package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port                string
	DatabaseURL         string
	JWTSecret           string
	JWTIssuer           string
	JWTTTL              time.Duration
	CORSOrigins         []string
	APIRevision         int
	NominatimBaseURL    string
	CloudinaryURL       string
	PlaceholderImageURL string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:                fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL:         strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:           strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:           fallback(os.Getenv("JWT_ISSUER"), "mimapa-backend"),
		CORSOrigins:         parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		NominatimBaseURL:    strings.TrimSpace(os.Getenv("NOMINATIM_BASE_URL")),
		CloudinaryURL:       strings.TrimSpace(os.Getenv("CLOUDINARY_URL")),
		PlaceholderImageURL: fallback(os.Getenv("PLACEHOLDER_IMAGE_URL"), "https://via.placeholder.com/150?text=No+Photo"),
	}

	minutes := fallback(os.Getenv("JWT_TTL_MINUTES"), "30")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.JWTTTL = 30 * time.Minute
	}

	revision := fallback(os.Getenv("API_REVISION"), "1")
	rev, err := strconv.Atoi(revision)
	if err != nil || (rev != 1 && rev != 2) {
		return Config{}, fmt.Errorf("API_REVISION must be 1 or 2, got %q", revision)
	}
	cfg.APIRevision = rev

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if cfg.CloudinaryURL == "" {
		return Config{}, errors.New("CLOUDINARY_URL is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
