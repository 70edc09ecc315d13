package storage

import (
	"context"

	"github.com/rs/zerolog"
)

// fallbackStore tries a remote store first, then falls back to the local file system.
type fallbackStore struct {
	primary ImageStore
	local   ImageStore
	logger  zerolog.Logger
}

// NewFallbackStore creates a store that writes to primary and, if that fails,
// to local. When primary is nil only local is used.
func NewFallbackStore(primary, local ImageStore, logger zerolog.Logger) ImageStore {
	return &fallbackStore{
		primary: primary,
		local:   local,
		logger:  logger.With().Str("component", "fallback-image-store").Logger(),
	}
}

// Save attempts the primary store, then the local one.
func (s *fallbackStore) Save(ctx context.Context, upload Upload) (string, error) {
	if s.primary != nil {
		ref, err := s.primary.Save(ctx, upload)
		if err == nil {
			return ref, nil
		}

		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		s.logger.Warn().
			Err(err).
			Str("name", upload.Name).
			Msg("failed to save image to remote store, falling back to local file system")
	}

	return s.local.Save(ctx, upload)
}
