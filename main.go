package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/internhq/internhub-be/internal/api"
	"github.com/internhq/internhub-be/internal/auth"
	"github.com/internhq/internhub-be/internal/config"
	"github.com/internhq/internhub-be/internal/database"
	"github.com/internhq/internhub-be/internal/logger"
	"github.com/internhq/internhub-be/internal/services"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Ensure the upload directory exists
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create upload directory")
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
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	notificationService := services.NewNotificationService(db)
	userService := services.NewUserService(db, cfg.UploadDir, cfg.BcryptCost)
	internService := services.NewInternService(db, notificationService)
	taskService := services.NewTaskService(db, notificationService)
	analyticsService := services.NewAnalyticsService(db)

	// Set up router
	router := api.NewRouter(tokenService, cfg.UploadDir,
		userService, internService, taskService, notificationService, analyticsService)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
