package service

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"roots-catalog/internal/model"
	"roots-catalog/internal/storage"

	"github.com/rs/zerolog"
)

// allowedExtensions lists the file extensions accepted for product images.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// allowedContentTypes lists the sniffed content types accepted for product images.
var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// uploadService implements UploadService.
type uploadService struct {
	store    storage.ImageStore
	maxBytes int64
	logger   zerolog.Logger
	now      func() time.Time
}

// NewUploadService creates a new upload service. maxBytes <= 0 disables the size check.
func NewUploadService(store storage.ImageStore, maxBytes int64, logger zerolog.Logger) UploadService {
	return &uploadService{
		store:    store,
		maxBytes: maxBytes,
		logger:   logger.With().Str("service", "upload").Logger(),
		now:      time.Now,
	}
}

// Upload checks that data is a JPEG or PNG image and stores it under a fresh name.
func (s *uploadService) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", model.ErrNoImage
	}

	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		s.logger.Warn().
			Str("filename", filename).
			Int("bytes", len(data)).
			Int64("max_bytes", s.maxBytes).
			Msg("image rejected: too large")
		return "", model.ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType := http.DetectContentType(data)
	if !allowedExtensions[ext] || !allowedContentTypes[contentType] {
		s.logger.Warn().
			Str("filename", filename).
			Str("content_type", contentType).
			Msg("image rejected: unsupported type")
		return "", model.ErrUnsupportedImage
	}

	ref, err := s.store.Save(ctx, storage.Upload{
		Name:        storage.ObjectName(ext, s.now()),
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("filename", filename).Msg("failed to store image")
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	s.logger.Info().
		Str("filename", filename).
		Str("ref", ref).
		Msg("image uploaded")

	return ref, nil
}
