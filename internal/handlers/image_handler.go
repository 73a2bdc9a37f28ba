package handlers

import (
	"io"
	"net/http"
	"strconv"

	"image-hosting/internal/apperr"
	"image-hosting/internal/requests"
	"image-hosting/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/kerimovok/go-pkg-utils/httpx"
	"github.com/kerimovok/go-pkg-utils/validator"
)

// ImageHandler handles image-related HTTP requests
type ImageHandler struct {
	imageService *services.ImageService
}

// NewImageHandler creates a new image handler around an injected service.
func NewImageHandler(imageService *services.ImageService) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
	}
}

// UploadImage handles multipart image upload requests
func (h *ImageHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		response := httpx.BadRequest("No file provided", err)
		return httpx.SendResponse(c, response)
	}
	if file.Filename == "" {
		response := httpx.BadRequest("File name is missing", nil)
		return httpx.SendResponse(c, response)
	}

	src, err := file.Open()
	if err != nil {
		response := httpx.InternalServerError("Failed to open uploaded file", err)
		return httpx.SendResponse(c, response)
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		response := httpx.InternalServerError("Failed to read file content", err)
		return httpx.SendResponse(c, response)
	}

	record, url, err := h.imageService.Ingest(data, file.Size, file.Filename)
	if err != nil {
		return respondError(c, "Failed to process image upload", err)
	}

	response := httpx.Created("File successfully uploaded", fiber.Map{
		"id":       record.ID,
		"filename": record.Filename,
		"url":      url,
	})
	return httpx.SendResponse(c, response)
}

// ListImages returns one page of images, newest first
func (h *ImageHandler) ListImages(c *fiber.Ctx) error {
	var input requests.ListImagesRequest
	if err := c.QueryParser(&input); err != nil {
		response := httpx.BadRequest("Invalid query parameters", err)
		return httpx.SendResponse(c, response)
	}

	// Defaults go in before validation so a bare listing request is valid.
	if input.Page <= 0 {
		input.Page = 1
	}
	if input.PerPage <= 0 {
		input.PerPage = h.imageService.DefaultPageSize()
	}

	if err := validator.ValidateStruct(&input); err != nil {
		response := httpx.BadRequest("Validation failed", err)
		return httpx.SendResponse(c, response)
	}

	result := h.imageService.ListPage(input.Page, input.PerPage)

	response := httpx.OK("Images retrieved successfully", result)
	return httpx.SendResponse(c, response)
}

// DeleteImage removes an image row and its stored file
func (h *ImageHandler) DeleteImage(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		response := httpx.BadRequest("Invalid image ID", err)
		return httpx.SendResponse(c, response)
	}

	if err := h.imageService.Delete(uint(id)); err != nil {
		return respondError(c, "Failed to delete image", err)
	}

	response := httpx.OK("Image deleted successfully", nil)
	return httpx.SendResponse(c, response)
}

// respondError translates a typed pipeline error into a response. The status
// is carried by the error itself, never derived from message text.
func respondError(c *fiber.Ctx, fallback string, err error) error {
	switch apperr.HTTPStatus(err) {
	case http.StatusRequestEntityTooLarge:
		return httpx.SendResponse(c, httpx.PayloadTooLarge(err.Error()))
	case http.StatusUnsupportedMediaType:
		return httpx.SendResponse(c, httpx.UnsupportedMediaType(err.Error()))
	case http.StatusNotFound:
		return httpx.SendResponse(c, httpx.NotFound(err.Error()))
	case http.StatusBadRequest:
		return httpx.SendResponse(c, httpx.BadRequest(err.Error(), err))
	default:
		return httpx.SendResponse(c, httpx.InternalServerError(fallback, err))
	}
}
