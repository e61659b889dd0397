package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"prism/internal/models"
)

const venueImagesDir = "venue_images"

// ImageStore persists venue images on the local filesystem under
// <root>/venue_images, mirroring the original upload area.
type ImageStore struct {
	root string
}

func NewImageStore(root string) (*ImageStore, error) {
	dir := filepath.Join(root, venueImagesDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &ImageStore{root: root}, nil
}

// SaveVenueImage stores an uploaded image under the derived name
// venue_<venueID>_<filename> and returns the relative path to record on
// the venue. A nil file yields the sentinel default path.
func (s *ImageStore) SaveVenueImage(venueID string, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return models.DefaultVenueImage, nil
	}

	fileName := fmt.Sprintf("venue_%s_%s", venueID, filepath.Base(file.Filename))
	relPath := filepath.Join(venueImagesDir, fileName)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded image: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.root, relPath))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return relPath, nil
}

// RemoveVenueImage deletes a previously stored image. The sentinel
// default path and already-missing files are left alone.
func (s *ImageStore) RemoveVenueImage(relPath string) error {
	if relPath == "" || relPath == models.DefaultVenueImage {
		return nil
	}

	err := os.Remove(filepath.Join(s.root, relPath))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	return nil
}
