package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/okzdev/microblog/backend/internal/apperr"
	"github.com/okzdev/microblog/backend/internal/router"
	"github.com/okzdev/microblog/backend/internal/storage"
	"github.com/okzdev/microblog/backend/pkg/config"
	"github.com/okzdev/microblog/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	// Initialize media blob storage
	blobStorage, err := initStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Error envelope and request validation
	e.HTTPErrorHandler = apperr.HTTPErrorHandler
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, blobStorage, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

func initStorage(cfg *config.Config) (storage.BlobStorage, error) {
	if cfg.StorageBackend == "minio" {
		return storage.NewMinioStorage(context.Background(),
			cfg.MinioEndpoint, cfg.MinioRootUser, cfg.MinioRootPassword, cfg.MinioBucket)
	}
	return storage.NewDiskStorage(cfg.UploadDir), nil
}
