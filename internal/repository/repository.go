package repository

import (
	"context"

	"tradestreet-api/internal/model"
)

// UserRepository defines data access for users and the cart embedded in each user.
// Lookups return (nil, nil) when no record matches.
type UserRepository interface {
	// Create inserts a new user. Returns model.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by internal reference.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// GetByEmail retrieves a user by email address.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByIDs retrieves every user whose reference is in ids. Unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]model.User, error)

	// SaveCart replaces the user's cart with the given lines.
	SaveCart(ctx context.Context, userID string, cart model.Cart) error
}

// ProductRepository defines data access for the product catalogue.
type ProductRepository interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// GetAll retrieves products in display-id order. A limit of 0 returns every product.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByCategory retrieves up to limit products of a category in display-id order.
	GetByCategory(ctx context.Context, category string, limit int) ([]model.Product, error)

	// Latest retrieves the limit most recently added products in display-id order.
	Latest(ctx context.Context, limit int) ([]model.Product, error)

	// GetByDisplayID retrieves a product by its public sequential id.
	GetByDisplayID(ctx context.Context, displayID int) (*model.Product, error)

	// GetByIDs retrieves every product whose reference is in ids. Unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// NextDisplayID returns the display id to assign to the next product.
	NextDisplayID(ctx context.Context) (int, error)

	// DeleteByDisplayID removes a product and reports whether one existed.
	DeleteByDisplayID(ctx context.Context, displayID int) (bool, error)
}

// OrderRepository defines data access for orders.
type OrderRepository interface {
	// Create inserts a new order.
	Create(ctx context.Context, order *model.Order) error

	// GetByID retrieves an order by its reference.
	GetByID(ctx context.Context, id string) (*model.Order, error)

	// ListByUser retrieves a user's orders, oldest first.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)

	// ListAll retrieves every order, oldest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// UpdateOrderStatus sets the fulfilment status and reports whether the order existed.
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (bool, error)
}
