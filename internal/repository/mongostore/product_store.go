package mongostore

import (
	"context"
	"errors"
	"fmt"

	"tradestreet-api/internal/model"
	"tradestreet-api/internal/repository"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var byDisplayID = bson.D{{Key: "display_id", Value: 1}}

type productStore struct {
	products *mongo.Collection
	logger   zerolog.Logger
}

// NewProductRepository creates a MongoDB-backed product repository.
func NewProductRepository(db *mongo.Database, logger zerolog.Logger) repository.ProductRepository {
	return &productStore{
		products: db.Collection(ProductsCollection),
		logger:   logger.With().Str("repository", "product").Str("driver", "mongo").Logger(),
	}
}

func (s *productStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Product, error) {
	cursor, err := s.products.Find(ctx, filter, opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products := []model.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (s *productStore) Create(ctx context.Context, product *model.Product) error {
	if _, err := s.products.InsertOne(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (s *productStore) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	opts := options.Find().SetSort(byDisplayID).SetSkip(int64(offset))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return s.find(ctx, bson.M{}, opts)
}

func (s *productStore) GetByCategory(ctx context.Context, category string, limit int) ([]model.Product, error) {
	opts := options.Find().SetSort(byDisplayID).SetLimit(int64(limit))
	return s.find(ctx, bson.M{"category": category}, opts)
}

func (s *productStore) Latest(ctx context.Context, limit int) ([]model.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "display_id", Value: -1}}).SetLimit(int64(limit))
	products, err := s.find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(products)-1; i < j; i, j = i+1, j-1 {
		products[i], products[j] = products[j], products[i]
	}
	return products, nil
}

func (s *productStore) GetByDisplayID(ctx context.Context, displayID int) (*model.Product, error) {
	var p model.Product
	if err := s.products.FindOne(ctx, bson.M{"display_id": displayID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Debug().Int("display_id", displayID).Msg("product not found")
			return nil, nil
		}
		s.logger.Error().Err(err).Int("display_id", displayID).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return &p, nil
}

func (s *productStore) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetSort(byDisplayID))
}

func (s *productStore) NextDisplayID(ctx context.Context) (int, error) {
	var last model.Product
	opts := options.FindOne().SetSort(bson.D{{Key: "display_id", Value: -1}})
	if err := s.products.FindOne(ctx, bson.M{}, opts).Decode(&last); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 1, nil
		}
		return 0, fmt.Errorf("failed to compute next display id: %w", err)
	}
	return last.DisplayID + 1, nil
}

func (s *productStore) DeleteByDisplayID(ctx context.Context, displayID int) (bool, error) {
	res, err := s.products.DeleteOne(ctx, bson.M{"display_id": displayID})
	if err != nil {
		s.logger.Error().Err(err).Int("display_id", displayID).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return res.DeletedCount > 0, nil
}
