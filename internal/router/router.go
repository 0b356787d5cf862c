package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/okzdev/microblog/backend/internal/handlers"
	"github.com/okzdev/microblog/backend/internal/metrics"
	"github.com/okzdev/microblog/backend/internal/middleware"
	"github.com/okzdev/microblog/backend/internal/models"
	"github.com/okzdev/microblog/backend/internal/repositories"
	"github.com/okzdev/microblog/backend/internal/storage"
	"github.com/okzdev/microblog/backend/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, blobStorage storage.BlobStorage, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := db.AutoMigrate(
		&models.User{},
		&models.Tweet{},
		&models.Media{},
		&models.Like{},
		&models.Follow{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Prometheus request metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	e.Use(collector.Middleware())
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(registry)))
	log.Println("Metrics configured.")

	// Uploaded files are served statically when blobs live on local disk.
	if disk, ok := blobStorage.(*storage.DiskStorage); ok {
		e.Static("/media", disk.Dir())
		log.Println("Static /media serving configured.")
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	tweetRepo := repositories.NewPostgresTweetRepository(db)
	mediaRepo := repositories.NewPostgresMediaRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)

	userHandler := handlers.NewUserHandler(userRepo, followRepo)

	// --- Public routes ---
	e.GET("/api/users/:id", userHandler.GetUser)
	log.Println("Public user profile route configured.")

	// --- Protected routes (require api-key authentication) ---
	api := e.Group("/api")
	api.Use(middleware.APIKeyAuth(userRepo))
	log.Println("API key authentication middleware applied to /api group.")

	// Tweet routes
	tweetHandler := handlers.NewTweetHandler(tweetRepo, blobStorage)
	tweetHandler.RegisterTweetRoutes(api)
	log.Println("Tweet routes configured.")

	// Media routes
	mediaHandler := handlers.NewMediaHandler(mediaRepo, blobStorage, cfg.MaxUploadBytes)
	mediaHandler.RegisterMediaRoutes(api)
	log.Println("Media routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(tweetRepo, followRepo)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, tweetRepo)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Profile routes
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	log.Println("All routes configured.")
}
