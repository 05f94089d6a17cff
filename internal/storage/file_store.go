package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tradestreet-api/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PublicPath is the URL path under which FileStore images are served.
const PublicPath = "/images/"

// FileStore writes images to a local directory.
type FileStore struct {
	dir     string
	baseURL string
	now     func() time.Time
	logger  zerolog.Logger
}

// NewFileStore creates a store rooted at dir. Image URLs are baseURL + PublicPath + name.
func NewFileStore(dir, baseURL string, logger zerolog.Logger) *FileStore {
	return &FileStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
		logger:  logger.With().Str("component", "file-image-store").Logger(),
	}
}

// Put writes the image to disk.
func (s *FileStore) Put(ctx context.Context, name, contentType string, body io.Reader) (model.ProductImage, error) {
	if err := ctx.Err(); err != nil {
		return model.ProductImage{}, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return model.ProductImage{}, fmt.Errorf("failed to create upload directory %s: %w", s.dir, err)
	}

	objectName := ObjectName(name, s.now())
	path := filepath.Join(s.dir, objectName)

	file, err := os.Create(path)
	if err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to create image file")
		return model.ProductImage{}, fmt.Errorf("failed to create image file %s: %w", path, err)
	}
	defer file.Close()

	written, err := io.Copy(file, body)
	if err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to write image file")
		_ = os.Remove(path)
		return model.ProductImage{}, fmt.Errorf("failed to write image file %s: %w", path, err)
	}

	s.logger.Debug().
		Str("file", path).
		Str("content_type", contentType).
		Int64("bytes", written).
		Msg("image stored")

	return model.ProductImage{
		ID:  uuid.NewString(),
		URL: s.baseURL + PublicPath + objectName,
	}, nil
}
