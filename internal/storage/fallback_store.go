package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"tradestreet-api/internal/model"

	"github.com/rs/zerolog"
)

// fallbackStore tries the primary store first, then falls back to the secondary one.
type fallbackStore struct {
	primary   ImageStore
	secondary ImageStore
	logger    zerolog.Logger
}

// NewFallbackStore creates a store that tries primary first, then secondary.
// If primary is nil, only secondary is used.
func NewFallbackStore(primary, secondary ImageStore, logger zerolog.Logger) ImageStore {
	if primary == nil {
		return secondary
	}
	return &fallbackStore{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With().Str("component", "fallback-image-store").Logger(),
	}
}

// Put buffers the image so it can be replayed against the secondary store.
func (s *fallbackStore) Put(ctx context.Context, name, contentType string, body io.Reader) (model.ProductImage, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return model.ProductImage{}, fmt.Errorf("failed to read image %s: %w", name, err)
	}

	img, err := s.primary.Put(ctx, name, contentType, bytes.NewReader(data))
	if err == nil {
		return img, nil
	}

	s.logger.Warn().
		Err(err).
		Str("name", name).
		Msg("failed to store image in primary store, falling back")

	return s.secondary.Put(ctx, name, contentType, bytes.NewReader(data))
}
