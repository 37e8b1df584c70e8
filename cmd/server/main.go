package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"kw8/gym-app/internal/api"
	"kw8/gym-app/internal/app"
	"kw8/gym-app/internal/config"
	"kw8/gym-app/internal/logging"
)

// @title KW8 Gym API
// @version 1.0
// @description Users, workout plans, folders, rankings, links and membership cards, served from the local store or the remote document store.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logging.New("info").Error(context.Background(), "could not load config", "err", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Log.Level)
	ctx := context.Background()
	log.Info(ctx, "starting KW8 gym server")

	if cfg.JWT.Secret == "" {
		log.Error(ctx, "JWT_SECRET is required")
		os.Exit(1)
	}

	// --- Backends and services ---
	a, err := app.New(ctx, cfg, log, app.Options{})
	if err != nil {
		log.Error(ctx, "could not initialize backends", "err", err)
		os.Exit(1)
	}
	defer func() {
		log.Info(ctx, "closing backends")
		if err := a.Close(); err != nil {
			log.Error(ctx, "failed to close backends", "err", err)
		}
	}()

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	api.SetupRoutes(router, api.Dependencies{
		JWTSecret:  cfg.JWT.Secret,
		Auth:       a.Auth,
		Users:      a.Users,
		Workouts:   a.Workouts,
		Rankings:   a.Rankings,
		Links:      a.Links,
		Membership: a.Membership,
		Media:      a.Media,
		Schedule:   a.Schedule,
		Remote:     a.Remote,
		Backend:    a.Selector,
		Storage:    a.Store,
		Log:        log,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // migrations run inside a request
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		log.Error(ctx, "server stopped", "err", err)
	}
	log.Info(ctx, "shutting down server")

	// The context is used to inform the server it has 5 seconds to finish
	// the requests it is currently handling
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error(ctx, "server forced to shutdown", "err", err)
	}
	log.Info(ctx, "server exiting")
}
