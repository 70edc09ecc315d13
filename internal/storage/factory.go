package storage

import (
	"context"
	"fmt"

	"roots-catalog/internal/config"

	"github.com/rs/zerolog"
)

// New builds the image store selected by cfg.Driver, wrapped with a local
// fallback when cfg.FallbackToLocal is set. A remote driver that fails to
// initialise degrades to local storage if the fallback is enabled.
func New(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (ImageStore, error) {
	if cfg.Driver == config.StorageLocal {
		return NewLocalStore(cfg.LocalDir, cfg.PublicPath, logger)
	}

	remote, err := newRemote(ctx, cfg, logger)

	if !cfg.FallbackToLocal {
		if err != nil {
			return nil, err
		}
		return remote, nil
	}

	local, localErr := NewLocalStore(cfg.LocalDir, cfg.PublicPath, logger)
	if localErr != nil {
		return nil, localErr
	}

	if err != nil {
		logger.Warn().
			Err(err).
			Str("driver", cfg.Driver).
			Msg("failed to initialise remote image store, using local file system only")
		return local, nil
	}

	return NewFallbackStore(remote, local, logger), nil
}

func newRemote(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (ImageStore, error) {
	switch cfg.Driver {
	case config.StorageS3:
		return NewS3Store(ctx, cfg.S3, logger)
	case config.StorageMinIO:
		return NewMinIOStore(ctx, cfg.MinIO, logger)
	case config.StorageCloudinary:
		return NewCloudinaryStore(cfg.Cloudinary.URL, cfg.Cloudinary.Folder, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}

// ServesLocal reports whether images may end up on the local file system and
// therefore need to be served by the API.
func ServesLocal(cfg config.StorageConfig) bool {
	return cfg.Driver == config.StorageLocal || cfg.FallbackToLocal
}
