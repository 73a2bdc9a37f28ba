package services

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"image-hosting/internal/apperr"
	"image-hosting/internal/imaging"

	"github.com/google/uuid"
)

// PublicURLPrefix is the path images are served from; the public URL is a
// pure function of the stored filename.
const PublicURLPrefix = "/images/"

// StorageWriter places validated images on disk under generated names.
type StorageWriter struct {
	uploadDir string
}

// NewStorageWriter creates the upload directory if needed and returns a
// writer rooted there.
func NewStorageWriter(uploadDir string) (*StorageWriter, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", uploadDir, err)
	}
	return &StorageWriter{uploadDir: uploadDir}, nil
}

// Save re-encodes the image per format policy and writes it under a fresh
// random name. The 128-bit token makes collisions negligible without an
// existence check, so a write never races a read-before-write.
func (s *StorageWriter) Save(d *imaging.Decoded, original []byte, originalName string) (filename, url string, size int64, err error) {
	ext, _ := imaging.InferExtension(d.Format)
	token := uuid.New()
	filename = hex.EncodeToString(token[:]) + ext

	encoded, err := imaging.Encode(d, original)
	if err != nil {
		return "", "", 0, err
	}

	target := filepath.Join(s.uploadDir, filename)
	if err := os.WriteFile(target, encoded, 0o644); err != nil {
		// Best effort: never leave a partial file behind.
		_ = os.Remove(target)
		return "", "", 0, apperr.StorageWriteFailure(fmt.Sprintf("failed to write image file: %v", err))
	}

	url = PublicURLPrefix + filename
	log.Printf("uploaded %q as %q (%s), url: %s", originalName, filename, d.Format, url)
	return filename, url, int64(len(encoded)), nil
}

// Remove deletes a stored file. A file that is already gone counts as
// removed, which keeps concurrent deletes of the same record benign.
func (s *StorageWriter) Remove(filename string) error {
	err := os.Remove(filepath.Join(s.uploadDir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the directory files are written to.
func (s *StorageWriter) Dir() string {
	return s.uploadDir
}
