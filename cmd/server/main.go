package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel_booking/internal/bootstrap"
	"travel_booking/internal/config"
	"travel_booking/internal/logger"
	"travel_booking/internal/router"
	"travel_booking/internal/utils"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log := logger.New("info", "json")
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Info().Msg("No .env file found or error loading, relying on environment variables")
	}
	ctx := log.WithContext(context.Background())

	// --- Store and cache ---
	store, closeStore, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to open store")
	}
	defer closeStore()

	catalogCache, closeCache, err := bootstrap.OpenCatalogCache(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open catalog cache")
	}
	defer closeCache()

	// --- Router ---
	engine := router.Setup(router.Deps{
		Store:             store,
		JWT:               utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpirationHours),
		CatalogCache:      catalogCache,
		Logger:            log,
		AllowedOrigins:    cfg.CORSAllowedOrigins,
		AuthRatePerMinute: cfg.AuthRatePerMinute,
		AuthRateBurst:     cfg.AuthRateBurst,
		InitialAdminEmail: cfg.InitialAdminEmail,
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
