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

var byCreatedAt = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

type orderStore struct {
	orders *mongo.Collection
	logger zerolog.Logger
}

// NewOrderRepository creates a MongoDB-backed order repository.
func NewOrderRepository(db *mongo.Database, logger zerolog.Logger) repository.OrderRepository {
	return &orderStore{
		orders: db.Collection(OrdersCollection),
		logger: logger.With().Str("repository", "order").Str("driver", "mongo").Logger(),
	}
}

func (s *orderStore) Create(ctx context.Context, order *model.Order) error {
	if _, err := s.orders.InsertOne(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (s *orderStore) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	if err := s.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	return &o, nil
}

func (s *orderStore) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return s.find(ctx, bson.M{"userId": userID})
}

func (s *orderStore) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.find(ctx, bson.M{})
}

func (s *orderStore) find(ctx context.Context, filter bson.M) ([]model.Order, error) {
	cursor, err := s.orders.Find(ctx, filter, options.Find().SetSort(byCreatedAt))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	orders := []model.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (s *orderStore) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (bool, error) {
	res, err := s.orders.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"orderStatus": status}})
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to update order status")
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	return res.MatchedCount > 0, nil
}
