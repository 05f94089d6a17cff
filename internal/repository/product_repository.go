package repository

import (
	"context"
	"errors"
	"fmt"

	"tradestreet-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, display_id, name, description, images, category, new_price, old_price, colour, sizes, available, created_at`

func scanProduct(row scanner) (*model.Product, error) {
	var (
		p      model.Product
		images []byte
		sizes  []byte
	)
	err := row.Scan(&p.ID, &p.DisplayID, &p.Name, &p.Description, &images, &p.Category,
		&p.NewPrice, &p.OldPrice, &p.Colour, &sizes, &p.Available, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON(images, &p.Images); err != nil {
		return nil, err
	}
	if err := decodeJSON(sizes, &p.Sizes); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	images, err := encodeJSON(product.Images)
	if err != nil {
		return err
	}
	sizes, err := encodeJSON(product.Sizes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = r.pool.Exec(ctx, query, product.ID, product.DisplayID, product.Name, product.Description,
		images, product.Category, product.NewPrice, product.OldPrice, product.Colour, sizes,
		product.Available, product.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("product_id", product.ID).
			Int("display_id", product.DisplayID).
			Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetAll retrieves products in display-id order with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	if limit <= 0 {
		query := `SELECT ` + productColumns + ` FROM products ORDER BY display_id OFFSET $1`
		return r.queryProducts(ctx, query, offset)
	}

	query := `SELECT ` + productColumns + ` FROM products ORDER BY display_id LIMIT $1 OFFSET $2`
	return r.queryProducts(ctx, query, limit, offset)
}

// GetByCategory retrieves up to limit products of a category.
func (r *productRepository) GetByCategory(ctx context.Context, category string, limit int) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE category = $1
		ORDER BY display_id
		LIMIT $2
	`
	return r.queryProducts(ctx, query, category, limit)
}

// Latest retrieves the most recently added products.
func (r *productRepository) Latest(ctx context.Context, limit int) ([]model.Product, error) {
	query := `
		SELECT * FROM (
			SELECT ` + productColumns + `
			FROM products
			ORDER BY display_id DESC
			LIMIT $1
		) latest
		ORDER BY display_id
	`
	return r.queryProducts(ctx, query, limit)
}

// GetByDisplayID retrieves a product by its public sequential id.
func (r *productRepository) GetByDisplayID(ctx context.Context, displayID int) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE display_id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, displayID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int("display_id", displayID).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int("display_id", displayID).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// GetByIDs retrieves multiple products by their internal references.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1) ORDER BY display_id`
	return r.queryProducts(ctx, query, ids)
}

// NextDisplayID returns one more than the highest display id, or 1 for an empty catalogue.
func (r *productRepository) NextDisplayID(ctx context.Context) (int, error) {
	var next int
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(display_id), 0) + 1 FROM products`).Scan(&next)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to compute next display id")
		return 0, fmt.Errorf("failed to compute next display id: %w", err)
	}
	return next, nil
}

// DeleteByDisplayID removes a product by its public sequential id.
func (r *productRepository) DeleteByDisplayID(ctx context.Context, displayID int) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE display_id = $1`, displayID)
	if err != nil {
		r.logger.Error().Err(err).Int("display_id", displayID).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
