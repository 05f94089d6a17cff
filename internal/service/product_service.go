package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tradestreet-api/internal/model"
	"tradestreet-api/internal/repository"
	"tradestreet-api/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	newCollectionsSize = 8
	featuredSize       = 4
	featuredCategory   = "women"
	maxUploadImages    = 10
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	images      storage.ImageStore
	now         func() time.Time
	newID       func() string
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, images storage.ImageStore, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		images:      images,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// ListAll retrieves products with pagination.
func (s *productService) ListAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.productRepo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved products")

	return products, nil
}

// NewCollections retrieves the eight most recently added products.
func (s *productService) NewCollections(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.Latest(ctx, newCollectionsSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get new collections: %w", err)
	}
	return products, nil
}

// PopularInWomen retrieves the first products of the women category.
func (s *productService) PopularInWomen(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetByCategory(ctx, featuredCategory, featuredSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get popular products: %w", err)
	}
	return products, nil
}

// Related retrieves the first products of a category.
func (s *productService) Related(ctx context.Context, category string) ([]model.Product, error) {
	if strings.TrimSpace(category) == "" {
		return nil, model.ErrCategoryRequired
	}

	products, err := s.productRepo.GetByCategory(ctx, category, featuredSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get related products: %w", err)
	}
	return products, nil
}

// AddProduct stores a new product with the next display id.
func (s *productService) AddProduct(ctx context.Context, req *model.ProductRequest, uploads []ImageUpload) (*model.Product, error) {
	if req == nil || strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Category) == "" ||
		req.NewPrice < 0 || req.OldPrice < 0 {
		return nil, model.ErrInvalidProduct
	}

	images := append([]model.ProductImage{}, req.Images...)
	if len(uploads) > 0 {
		uploaded, err := s.UploadImages(ctx, uploads)
		if err != nil {
			return nil, err
		}
		images = append(images, uploaded...)
	}

	displayID, err := s.productRepo.NextDisplayID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate display id: %w", err)
	}

	sizes := req.Sizes
	if sizes == nil {
		sizes = []model.SizeOption{}
	}

	product := &model.Product{
		ID:          s.newID(),
		DisplayID:   displayID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Images:      images,
		Category:    strings.TrimSpace(req.Category),
		NewPrice:    req.NewPrice,
		OldPrice:    req.OldPrice,
		Colour:      req.Colour,
		Sizes:       sizes,
		Available:   true,
		CreatedAt:   s.now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID).
		Int("display_id", product.DisplayID).
		Str("name", product.Name).
		Msg("product added")

	return product, nil
}

// RemoveProduct deletes a product by display id.
func (s *productService) RemoveProduct(ctx context.Context, displayID int) error {
	deleted, err := s.productRepo.DeleteByDisplayID(ctx, displayID)
	if err != nil {
		return fmt.Errorf("failed to remove product: %w", err)
	}
	if !deleted {
		return model.ErrProductNotFound
	}

	s.logger.Info().Int("display_id", displayID).Msg("product removed")

	return nil
}

// UploadImages stores up to ten images.
func (s *productService) UploadImages(ctx context.Context, uploads []ImageUpload) ([]model.ProductImage, error) {
	if len(uploads) == 0 {
		return nil, model.ErrNoImagesUploaded
	}
	if len(uploads) > maxUploadImages {
		uploads = uploads[:maxUploadImages]
	}

	images := make([]model.ProductImage, 0, len(uploads))
	for _, u := range uploads {
		img, err := s.images.Put(ctx, u.Name, u.ContentType, u.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to store image %s: %w", u.Name, err)
		}
		images = append(images, img)
	}

	s.logger.Debug().Int("count", len(images)).Msg("images uploaded")

	return images, nil
}
