package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// cloudinaryUploadAPI is the part of the Cloudinary upload API used here.
type cloudinaryUploadAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

// cloudinaryStore implements ImageStore for Cloudinary.
type cloudinaryStore struct {
	api    cloudinaryUploadAPI
	folder string
	logger zerolog.Logger
}

// NewCloudinaryStore creates a Cloudinary-backed store from a cloudinary:// URL.
func NewCloudinaryStore(cloudURL, folder string, logger zerolog.Logger) (ImageStore, error) {
	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise cloudinary: %w", err)
	}

	logger = logger.With().Str("component", "cloudinary-image-store").Logger()
	logger.Info().Str("folder", folder).Msg("Cloudinary image store initialised")

	return &cloudinaryStore{
		api:    &cld.Upload,
		folder: folder,
		logger: logger,
	}, nil
}

// Save uploads the image and returns its secure URL.
func (s *cloudinaryStore) Save(ctx context.Context, upload Upload) (string, error) {
	publicID := strings.TrimSuffix(upload.Name, path.Ext(upload.Name))

	result, err := s.api.Upload(ctx, bytes.NewReader(upload.Data), uploader.UploadParams{
		PublicID: publicID,
		Folder:   s.folder,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("public_id", publicID).Msg("cloudinary upload failed")
		return "", fmt.Errorf("cloudinary upload failed for %s: %w", publicID, err)
	}

	if result.Error.Message != "" {
		s.logger.Error().Str("error", result.Error.Message).Str("public_id", publicID).Msg("cloudinary rejected upload")
		return "", fmt.Errorf("cloudinary rejected upload for %s: %s", publicID, result.Error.Message)
	}

	s.logger.Info().
		Str("public_id", result.PublicID).
		Str("url", result.SecureURL).
		Msg("image uploaded to Cloudinary")

	return result.SecureURL, nil
}
