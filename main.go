package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/postbox-app/postbox-be/internal/api"
	"github.com/postbox-app/postbox-be/internal/auth"
	"github.com/postbox-app/postbox-be/internal/cache"
	"github.com/postbox-app/postbox-be/internal/config"
	"github.com/postbox-app/postbox-be/internal/database"
	"github.com/postbox-app/postbox-be/internal/logger"
	"github.com/postbox-app/postbox-be/internal/monitoring"
	"github.com/postbox-app/postbox-be/internal/services"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	userService := services.NewUserService(db, cfg.BcryptCost)
	postService := services.NewPostService(db)
	eventService := services.NewAuthEventService(db)
	tokenService := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)

	// Single long-lived read cache, shared by all requests
	postCache := cache.NewPostCache(cfg.CacheTTL, cfg.CacheMaxEntries)

	// Set up and run the background cache janitor
	janitor, err := monitoring.NewJanitor(postCache, cfg.CacheSweepSchedule)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid cache sweep schedule")
	}
	go janitor.Run()

	// Set up router
	router := api.NewRouter(userService, postService, eventService, tokenService, postCache, cfg.CORSOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	janitor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
