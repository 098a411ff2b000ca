package router

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sociallink-app/backend/internal/handlers"
	"github.com/sociallink-app/backend/internal/media"
	"github.com/sociallink-app/backend/internal/middleware"
	"github.com/sociallink-app/backend/internal/models"
	"github.com/sociallink-app/backend/internal/repositories"
	"github.com/sociallink-app/backend/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, cfg *config.Config, logger *zap.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORSWithConfig(eMiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, logger *zap.Logger) {
	// AutoMigrate models
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	e.HTTPErrorHandler = NewHTTPErrorHandler(logger, cfg.IsDevelopment())

	mediaStore, err := media.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize media store: %v", err)
	}

	// --- Initialize repositories ---
	userRepo := repositories.NewGormUserRepository(db)
	postRepo := repositories.NewGormPostRepository(db)
	likeRepo := repositories.NewGormLikeRepository(db)
	commentRepo := repositories.NewGormCommentRepository(db)

	// Liveness
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "SocialLink API is running...")
	})
	e.GET("/api/health", handlers.HealthCheck)

	// Stored avatars are served as static files
	e.Static(media.PublicPrefix, mediaStore.Dir())

	// --- Unprotected routes ---
	api := e.Group("/api")

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	authHandler.RegisterAuthRoutes(api.Group("/auth"))

	postHandler := handlers.NewPostHandler(postRepo, likeRepo, commentRepo, userRepo)
	postHandler.RegisterPublicRoutes(api)

	userHandler := handlers.NewUserHandler(userRepo, mediaStore)
	userHandler.RegisterPublicRoutes(api)

	// --- Protected routes (require bearer token) ---
	protected := api.Group("", middleware.JWTAuth(cfg.JWTSecret))
	postHandler.RegisterProtectedRoutes(protected)
	userHandler.RegisterProtectedRoutes(protected)
}
