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

	"github.com/tokenagents/character-registry/internal/api"
	"github.com/tokenagents/character-registry/internal/config"
	"github.com/tokenagents/character-registry/internal/eliza"
	"github.com/tokenagents/character-registry/internal/platform/factory"
	"github.com/tokenagents/character-registry/internal/platform/logger"
	"github.com/tokenagents/character-registry/internal/services"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		bootLog := logger.New("character-registry", false)
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New("character-registry", cfg.IsProduction())
	zerolog.DefaultContextLogger = &log

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.Port).
		Msg("Character registry starting")

	if cfg.ElizaServerURL == "" {
		log.Warn().Msg("ELIZA_SERVER_URL not set; init relay will fail until configured")
	}

	// Store initialization failures are fatal: running without the
	// characters table would turn every request into an error.
	st, err := factory.NewStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize store")
	}

	svc := services.NewCharacterService(st, eliza.New(cfg.ElizaServerURL), log)

	server := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      api.NewRouter(svc, st),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}
