package service

import (
	"context"
	"fmt"

	"tradestreet-api/internal/model"
	"tradestreet-api/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService. There is no locking: concurrent
// mutations of the same cart are last-write-wins.
type cartService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(userRepo repository.UserRepository, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		userRepo:    userRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) loadUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		s.logger.Debug().Str("user_id", userID).Msg("user not found")
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// AddLine adds one unit of a product to the cart.
func (s *cartService) AddLine(ctx context.Context, userID string, displayID int, size string) (model.Cart, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByDisplayID(ctx, displayID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		s.logger.Debug().Int("display_id", displayID).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	cart := user.Cart.Clone()
	cart.Add(product, size)

	if err := s.userRepo.SaveCart(ctx, userID, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("product_id", product.ID).
		Str("size", size).
		Int("lines", len(cart)).
		Msg("added to cart")

	return cart, nil
}

// RemoveLine removes one unit of a cart line. The cart is not written when no line matches.
func (s *cartService) RemoveLine(ctx context.Context, userID, productID, size string) (model.Cart, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := user.Cart.Clone()
	if err := cart.Remove(productID, size); err != nil {
		s.logger.Debug().
			Str("user_id", userID).
			Str("product_id", productID).
			Str("size", size).
			Msg("cart line not found")
		return nil, err
	}

	if err := s.userRepo.SaveCart(ctx, userID, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return cart, nil
}

// GetCart returns the user's cart lines as stored.
func (s *cartService) GetCart(ctx context.Context, userID string) (model.Cart, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Cart == nil {
		return model.Cart{}, nil
	}
	return user.Cart, nil
}
