package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// localStore implements ImageStore on the local file system.
type localStore struct {
	dir        string
	publicPath string
	logger     zerolog.Logger
}

// NewLocalStore creates a store writing into dir. Saved images are referenced as
// publicPath + name, which the router serves from dir.
func NewLocalStore(dir, publicPath string, logger zerolog.Logger) (ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	return &localStore{
		dir:        dir,
		publicPath: publicPath,
		logger:     logger.With().Str("component", "local-image-store").Logger(),
	}, nil
}

// Save writes the image into the upload directory. Existing files are never overwritten.
func (s *localStore) Save(ctx context.Context, upload Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Base(upload.Name)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to create image file")
		return "", fmt.Errorf("failed to create image file %s: %w", name, err)
	}

	if _, err := f.Write(upload.Data); err != nil {
		f.Close()
		os.Remove(path)
		s.logger.Error().Err(err).Str("file", path).Msg("failed to write image file")
		return "", fmt.Errorf("failed to write image file %s: %w", name, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close image file %s: %w", name, err)
	}

	s.logger.Info().
		Str("file", path).
		Int("bytes", len(upload.Data)).
		Msg("image saved to local file system")

	return s.publicPath + name, nil
}
