package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sociallink-app/backend/internal/router"
	"github.com/sociallink-app/backend/pkg/config"
	"github.com/sociallink-app/backend/pkg/logger"
	"github.com/sociallink-app/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer log.Sync()

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.CloseDB()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Validator
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e, cfg, log)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Gorm, cfg, log)

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server stopped", zap.Error(err))
		}
	}()
	log.Info("Server started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	// Shut down cleanly on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("Shutdown error", zap.Error(err))
	}
	log.Info("Server stopped")
}
