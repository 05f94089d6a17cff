package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tradestreet-api/internal/model"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.UnixMilli(1700000000123)

func TestObjectName(t *testing.T) {
	tests := []struct {
		name     string
		original string
		expected string
	}{
		{name: "Plain file", original: "shirt.png", expected: "1700000000123-shirt.png"},
		{name: "Spaces replaced", original: "my photo.jpg", expected: "1700000000123-my_photo.jpg"},
		{name: "Directories stripped", original: "../../etc/passwd", expected: "1700000000123-passwd"},
		{name: "Windows path stripped", original: `C:\Users\me\hat.jpg`, expected: "1700000000123-hat.jpg"},
		{name: "Empty name", original: "", expected: "1700000000123-image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ObjectName(tt.original, fixedNow))
		})
	}
}

func TestFileStore_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	store := NewFileStore(dir, "http://localhost:4000/", zerolog.Nop())
	store.now = func() time.Time { return fixedNow }

	img, err := store.Put(context.Background(), "shirt.png", "image/png", strings.NewReader("png-bytes"))

	require.NoError(t, err)
	assert.NotEmpty(t, img.ID)
	assert.Equal(t, "http://localhost:4000/images/1700000000123-shirt.png", img.URL)

	data, err := os.ReadFile(filepath.Join(dir, "1700000000123-shirt.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestFileStore_PutCancelled(t *testing.T) {
	store := NewFileStore(t.TempDir(), "http://localhost:4000", zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Put(ctx, "shirt.png", "image/png", strings.NewReader("png-bytes"))
	assert.ErrorIs(t, err, context.Canceled)
}

type mockPutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (m *mockPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.input = params
	data, _ := io.ReadAll(params.Body)
	m.body = string(data)
	if m.err != nil {
		return nil, m.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Put(t *testing.T) {
	putter := &mockPutter{}
	store := newS3Store(putter, "shop-images", "ap-south-1", "product_images/", zerolog.Nop())
	store.now = func() time.Time { return fixedNow }

	img, err := store.Put(context.Background(), "hat.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "https://shop-images.s3.ap-south-1.amazonaws.com/product_images/1700000000123-hat.jpg", img.URL)
	assert.NotEmpty(t, img.ID)
	require.NotNil(t, putter.input)
	assert.Equal(t, "shop-images", *putter.input.Bucket)
	assert.Equal(t, "product_images/1700000000123-hat.jpg", *putter.input.Key)
	assert.Equal(t, "image/jpeg", *putter.input.ContentType)
	assert.Equal(t, "jpeg-bytes", putter.body)
}

func TestS3Store_PutError(t *testing.T) {
	putter := &mockPutter{err: errors.New("access denied")}
	store := newS3Store(putter, "shop-images", "ap-south-1", "", zerolog.Nop())

	_, err := store.Put(context.Background(), "hat.jpg", "", strings.NewReader("jpeg-bytes"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to put object to S3")
	assert.Nil(t, putter.input.ContentType)
}

type stubStore struct {
	calls int
	body  string
	img   model.ProductImage
	err   error
}

func (s *stubStore) Put(ctx context.Context, name, contentType string, body io.Reader) (model.ProductImage, error) {
	s.calls++
	data, _ := io.ReadAll(body)
	s.body = string(data)
	return s.img, s.err
}

func TestFallbackStore(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("Primary success skips secondary", func(t *testing.T) {
		primary := &stubStore{img: model.ProductImage{ID: "1", URL: "s3://img"}}
		secondary := &stubStore{}
		store := NewFallbackStore(primary, secondary, logger)

		img, err := store.Put(ctx, "a.png", "image/png", strings.NewReader("data"))

		require.NoError(t, err)
		assert.Equal(t, "s3://img", img.URL)
		assert.Equal(t, 0, secondary.calls)
	})

	t.Run("Primary failure replays the full body to secondary", func(t *testing.T) {
		primary := &stubStore{err: errors.New("s3 unavailable")}
		secondary := &stubStore{img: model.ProductImage{ID: "2", URL: "http://local/img"}}
		store := NewFallbackStore(primary, secondary, logger)

		img, err := store.Put(ctx, "a.png", "image/png", strings.NewReader("data"))

		require.NoError(t, err)
		assert.Equal(t, "http://local/img", img.URL)
		assert.Equal(t, "data", primary.body)
		assert.Equal(t, "data", secondary.body)
	})

	t.Run("Nil primary uses secondary directly", func(t *testing.T) {
		secondary := &stubStore{}
		store := NewFallbackStore(nil, secondary, logger)
		assert.Same(t, secondary, store)
	})
}
