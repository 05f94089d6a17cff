// Command seed loads a sample catalogue into an empty PostgreSQL database.
package main

import (
	"context"
	"fmt"
	"os"

	"tradestreet-api/internal/config"
	"tradestreet-api/internal/database"
	"tradestreet-api/internal/model"
	"tradestreet-api/internal/repository"
	"tradestreet-api/internal/service"
	"tradestreet-api/internal/storage"
)

// sampleProducts are added in order, so the first one gets display id 1.
var sampleProducts = []model.ProductRequest{
	{
		Name:        "Striped Flutter Sleeve Blouse",
		Description: "Lightweight overlap collar blouse with peplum hem.",
		Category:    "women",
		NewPrice:    50,
		OldPrice:    80.5,
		Colour:      "red",
		Sizes:       []model.SizeOption{{Name: "S", Quantity: 10}, {Name: "M", Quantity: 10}, {Name: "L", Quantity: 5}},
	},
	{
		Name:        "Linen Wrap Dress",
		Description: "Breathable linen dress with a tie waist.",
		Category:    "women",
		NewPrice:    85,
		OldPrice:    120,
		Colour:      "white",
		Sizes:       []model.SizeOption{{Name: "S", Quantity: 4}, {Name: "M", Quantity: 6}},
	},
	{
		Name:        "Slim Fit Bomber Jacket",
		Description: "Full-zip bomber with ribbed cuffs.",
		Category:    "men",
		NewPrice:    85,
		OldPrice:    120.5,
		Colour:      "green",
		Sizes:       []model.SizeOption{{Name: "M", Quantity: 8}, {Name: "L", Quantity: 8}, {Name: "XL", Quantity: 3}},
	},
	{
		Name:        "Hooded Sweatshirt",
		Description: "Cotton fleece hoodie with kangaroo pocket.",
		Category:    "kid",
		NewPrice:    30,
		OldPrice:    45,
		Colour:      "blue",
		Sizes:       []model.SizeOption{{Name: "S", Quantity: 12}},
	},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("seed supports the postgres driver only, got %s", cfg.Database.Driver)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	products := repository.NewProductRepository(pool, logger)
	existing, err := products.GetAll(ctx, 1, 0)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info().Msg("catalogue already has products, nothing to seed")
		return nil
	}

	catalogue := service.NewProductService(products, storage.NewFileStore(cfg.Storage.LocalDir, cfg.Storage.PublicBaseURL, logger), logger)
	for i := range sampleProducts {
		product, err := catalogue.AddProduct(ctx, &sampleProducts[i], nil)
		if err != nil {
			return fmt.Errorf("failed to add %q: %w", sampleProducts[i].Name, err)
		}
		fmt.Printf("Added #%d %s\n", product.DisplayID, product.Name)
	}

	fmt.Printf("\nSeeded %d products\n", len(sampleProducts))
	return nil
}
