package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mherrero/mimapa-be/internal/config"
	"github.com/mherrero/mimapa-be/internal/geocode"
	"github.com/mherrero/mimapa-be/internal/media"
	"github.com/mherrero/mimapa-be/internal/server"
	"github.com/mherrero/mimapa-be/internal/storage/postgres"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	store, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("init database")
	}
	defer store.Close()

	uploads, err := media.NewCloudinary(cfg.CloudinaryURL)
	if err != nil {
		log.Fatal().Err(err).Msg("init media uploader")
	}
	geo := geocode.NewNominatim(cfg.NominatimBaseURL)

	stores := server.Stores{Users: store, Items: store, Visits: store}
	srv := server.New(cfg, stores, geo, uploads)

	go func() {
		log.Info().
			Str("addr", cfg.HTTPAddress()).
			Int("revision", cfg.APIRevision).
			Msg("mimapa backend listening")
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found; relying on existing environment")
	}
}
