package routes

import (
	"time"

	"image-hosting/internal/handlers"
	"image-hosting/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/monitor"
)

// SetupRoutes registers the API, static image serving, health and metrics
// routes on the app.
func SetupRoutes(app *fiber.App, imageHandler *handlers.ImageHandler, uploadDir string) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Monitor route
	app.Get("/metrics", monitor.New())

	// Health check route
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"service":   "image-hosting",
			"timestamp": time.Now().UTC(),
		})
	})

	// Stored images are served straight from disk; the public URL is a pure
	// function of the generated filename.
	app.Static(services.PublicURLPrefix, uploadDir)

	// Image routes
	images := v1.Group("/images")
	images.Post("/", imageHandler.UploadImage)
	images.Get("/", imageHandler.ListImages)
	images.Delete("/:id", imageHandler.DeleteImage)
}
