// Package storage persists uploaded product images and returns their public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"tradestreet-api/internal/model"
)

// ImageStore stores an image and returns its public reference.
type ImageStore interface {
	Put(ctx context.Context, name, contentType string, body io.Reader) (model.ProductImage, error)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectName returns the stored name for an uploaded file: "<unix-millis>-<base name>".
func ObjectName(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	if base == "." || base == "/" || base == "" {
		base = "image"
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), base)
}
