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
)

type userStore struct {
	users  *mongo.Collection
	logger zerolog.Logger
}

// NewUserRepository creates a MongoDB-backed user repository.
func NewUserRepository(db *mongo.Database, logger zerolog.Logger) repository.UserRepository {
	return &userStore{
		users:  db.Collection(UsersCollection),
		logger: logger.With().Str("repository", "user").Str("driver", "mongo").Logger(),
	}
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	doc := *user
	if doc.Cart == nil {
		doc.Cart = model.Cart{}
	}

	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			s.logger.Debug().Str("email", user.Email).Msg("email already registered")
			return model.ErrEmailTaken
		}
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *userStore) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var u model.User
	if err := s.users.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		s.logger.Error().Err(err).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

func (s *userStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *userStore) GetByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}

	cursor, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query users by IDs")
		return nil, fmt.Errorf("failed to query users by IDs: %w", err)
	}

	users := []model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (s *userStore) SaveCart(ctx context.Context, userID string, cart model.Cart) error {
	if cart == nil {
		cart = model.Cart{}
	}

	res, err := s.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"cartTwo": cart}})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to save cart")
		return fmt.Errorf("failed to save cart: %w", err)
	}

	if res.MatchedCount == 0 {
		return model.ErrUserNotFound
	}

	return nil
}
