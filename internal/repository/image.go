package repository

import (
	"errors"
	"fmt"

	"image-hosting/internal/apperr"
	"image-hosting/internal/models"

	"gorm.io/gorm"
)

// ImageRepository wraps all SQL used by the ingestion, listing and deletion
// paths. It is the sole owner of the images table.
type ImageRepository struct {
	db *gorm.DB
}

// NewImageRepository constructs a repository over an injected GORM handle.
func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// Insert appends a row; id and upload_time are assigned by the store.
func (r *ImageRepository) Insert(image *models.Image) error {
	if err := r.db.Create(image).Error; err != nil {
		return apperr.PersistenceFailure(fmt.Sprintf("failed to save image record: %v", err))
	}
	return nil
}

// FetchPage returns a page of records ordered by upload_time descending,
// plus the total row count. An offset past the end yields an empty page.
func (r *ImageRepository) FetchPage(page, perPage int) ([]models.Image, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := r.db.Model(&models.Image{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count images: %w", err)
	}

	var images []models.Image
	offset := (page - 1) * perPage
	err := r.db.Order("upload_time DESC").
		Offset(offset).
		Limit(perPage).
		Find(&images).Error
	if err != nil {
		return nil, 0, fmt.Errorf("fetch images page %d: %w", page, err)
	}
	return images, total, nil
}

// FindByID returns the record for id, or a NotFound error.
func (r *ImageRepository) FindByID(id uint) (*models.Image, error) {
	var image models.Image
	if err := r.db.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("image %d not found", id))
		}
		return nil, fmt.Errorf("find image %d: %w", id, err)
	}
	return &image, nil
}

// DeleteByID removes the row for id and reports whether one existed.
func (r *ImageRepository) DeleteByID(id uint) (bool, error) {
	res := r.db.Delete(&models.Image{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete image %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Transaction runs fn against a transaction-scoped repository. The row
// mutations commit only when fn returns nil.
func (r *ImageRepository) Transaction(fn func(tx *ImageRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ImageRepository{db: tx})
	})
}
