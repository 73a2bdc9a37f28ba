package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"image-hosting/internal/config"
	"image-hosting/internal/constants"
	"image-hosting/internal/database"
	"image-hosting/internal/handlers"
	"image-hosting/internal/repository"
	"image-hosting/internal/routes"
	"image-hosting/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	pkgConfig "github.com/kerimovok/go-pkg-utils/config"
	pkgValidator "github.com/kerimovok/go-pkg-utils/validator"
)

func init() {
	// Load all configs
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("failed to load configs: %v", err)
	}

	// Validate environment variables
	if err := pkgValidator.ValidateConfig(constants.EnvValidationRules); err != nil {
		log.Fatalf("configuration validation failed: %v", err)
	}
}

func setupApp(maxFileSize int64) *fiber.App {
	app := fiber.New(fiber.Config{
		// Slack above the image size limit so multipart framing never trips
		// the transport layer before the validator reports the real reason.
		BodyLimit: int(maxFileSize) + 1<<20,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(compress.New())
	app.Use(healthcheck.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return uuid.New().String()
		},
	}))
	app.Use(logger.New())

	return app
}

func main() {
	cfg := config.GetConfig()
	maxFileSize, err := cfg.MaxFileSizeBytes()
	if err != nil {
		log.Fatalf("invalid max file size: %v", err)
	}

	// Connect to database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Wire the ingestion pipeline
	storage, err := services.NewStorageWriter(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatalf("failed to prepare upload directory: %v", err)
	}
	repo := repository.NewImageRepository(db)
	imageService := services.NewImageService(repo, storage, maxFileSize, cfg.Storage.AllowedFormats, cfg.Listing.PerPage)
	imageHandler := handlers.NewImageHandler(imageService)

	// Setup Fiber app
	app := setupApp(maxFileSize)

	// Setup routes
	routes.SetupRoutes(app, imageHandler, cfg.Storage.UploadDir)

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Gracefully shutting down...")

		// Shutdown the server
		if err := app.Shutdown(); err != nil {
			log.Printf("error during server shutdown: %v", err)
		}

		log.Println("Server gracefully stopped")
		os.Exit(0)
	}()

	// Start server
	if err := app.Listen(":" + pkgConfig.GetEnv("PORT")); err != nil && err != http.ErrServerClosed {
		log.Fatalf("failed to start server: %v", err)
	}
}
