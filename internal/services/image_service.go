package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"image-hosting/internal/apperr"
	"image-hosting/internal/imaging"
	"image-hosting/internal/models"
	"image-hosting/internal/repository"
)

// DefaultPerPage is the listing page size when the client does not ask for one.
const DefaultPerPage = 10

const maxPerPage = 100

// ImageView is an ImageRecord decorated for API responses.
type ImageView struct {
	ID           uint    `json:"id"`
	Filename     string  `json:"filename"`
	OriginalName string  `json:"original_name"`
	Size         int64   `json:"size"`
	UploadTime   *string `json:"upload_time"`
	FileType     string  `json:"file_type"`
	URL          string  `json:"url"`
}

// Pagination describes the position of a listing page.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasPrev     bool  `json:"has_prev"`
	HasNext     bool  `json:"has_next"`
}

// ListingResult is the full payload of the listing endpoint.
type ListingResult struct {
	Images     []ImageView `json:"images"`
	Pagination Pagination  `json:"pagination"`
}

// ImageService composes the validator, storage writer and metadata store
// into the ingestion, listing and deletion operations.
type ImageService struct {
	repo           *repository.ImageRepository
	storage        *StorageWriter
	maxFileSize    int64
	allowedFormats []string
	defaultPerPage int
}

// NewImageService wires the service from injected collaborators.
// defaultPerPage is the configured listing page size; values below 1 fall
// back to DefaultPerPage.
func NewImageService(repo *repository.ImageRepository, storage *StorageWriter, maxFileSize int64, allowedFormats []string, defaultPerPage int) *ImageService {
	if len(allowedFormats) == 0 {
		allowedFormats = imaging.DefaultAllowedFormats
	}
	if defaultPerPage < 1 {
		defaultPerPage = DefaultPerPage
	}
	return &ImageService{
		repo:           repo,
		storage:        storage,
		maxFileSize:    maxFileSize,
		allowedFormats: allowedFormats,
		defaultPerPage: defaultPerPage,
	}
}

// DefaultPageSize returns the configured listing page size.
func (s *ImageService) DefaultPageSize() int {
	return s.defaultPerPage
}

// Ingest validates the uploaded bytes, writes the file and records the
// metadata row, in that order. Each stage is terminal on failure; nothing is
// retried.
func (s *ImageService) Ingest(data []byte, declaredSize int64, originalName string) (*models.Image, string, error) {
	decoded, err := imaging.Validate(data, declaredSize, s.maxFileSize, s.allowedFormats)
	if err != nil {
		return nil, "", err
	}

	filename, url, size, err := s.storage.Save(decoded, data, originalName)
	if err != nil {
		return nil, "", err
	}

	record := &models.Image{
		Filename:     filename,
		OriginalName: originalName,
		Size:         size,
		FileType:     decoded.Format,
	}
	if err := s.repo.Insert(record); err != nil {
		// The file is already on disk; the orphan is logged rather than
		// silently dropped so an operator can reconcile it.
		log.Printf("orphaned file %q: metadata insert failed: %v", filename, err)
		return nil, "", err
	}
	return record, url, nil
}

// ListPage returns one page of images, newest first. A store failure
// degrades to an empty page instead of failing the whole listing.
func (s *ImageService) ListPage(page, perPage int) *ListingResult {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = s.defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	images, total, err := s.repo.FetchPage(page, perPage)
	if err != nil {
		log.Printf("image listing degraded to empty page: %v", err)
		return &ListingResult{
			Images: []ImageView{},
			Pagination: Pagination{
				CurrentPage: page,
				PerPage:     perPage,
				Total:       0,
				TotalPages:  1,
			},
		}
	}

	views := make([]ImageView, 0, len(images))
	for _, img := range images {
		views = append(views, newImageView(img))
	}

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages < 1 {
		totalPages = 1
	}
	return &ListingResult{
		Images: views,
		Pagination: Pagination{
			CurrentPage: page,
			PerPage:     perPage,
			Total:       total,
			TotalPages:  totalPages,
			HasPrev:     page > 1,
			HasNext:     page < totalPages,
		},
	}
}

// Delete removes the metadata row and the stored file. The row deletion
// commits only if the coordinator runs to completion; a missing file counts
// as already removed, and any other file-removal failure is logged without
// aborting, favoring metadata consistency over a stray unreferenced file.
func (s *ImageService) Delete(id uint) error {
	err := s.repo.Transaction(func(tx *repository.ImageRepository) error {
		image, err := tx.FindByID(id)
		if err != nil {
			return err
		}
		if _, err := tx.DeleteByID(id); err != nil {
			return err
		}
		if err := s.storage.Remove(image.Filename); err != nil {
			log.Printf("failed to remove file %q for image %d: %v", image.Filename, id, err)
		}
		return nil
	})
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			return err
		}
		return apperr.DeletionFailed(fmt.Sprintf("failed to delete image: %v", err))
	}
	return nil
}

func newImageView(img models.Image) ImageView {
	view := ImageView{
		ID:           img.ID,
		Filename:     img.Filename,
		OriginalName: img.OriginalName,
		Size:         img.Size,
		FileType:     img.FileType,
		URL:          PublicURLPrefix + img.Filename,
	}
	if !img.UploadTime.IsZero() {
		ts := img.UploadTime.UTC().Format(time.RFC3339)
		view.UploadTime = &ts
	}
	return view
}
