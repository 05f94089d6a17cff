package integration

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"tradestreet-api/internal/auth"
	"tradestreet-api/internal/handler"
	"tradestreet-api/internal/payment"
	"tradestreet-api/internal/repository"
	"tradestreet-api/internal/router"
	"tradestreet-api/internal/service"
	"tradestreet-api/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL test container with the schema applied.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))
	require.NoError(t, repository.EnsureSchema(ctx, pool))

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return pool
}

// fakeGateway is an in-memory card processor whose payments always succeed.
type fakeGateway struct {
	mu       sync.Mutex
	sessions map[string]*payment.CheckoutSession
	requests []payment.CheckoutRequest
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: make(map[string]*payment.CheckoutSession)}
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := fmt.Sprintf("cs_test_%d", len(g.sessions)+1)
	session := &payment.CheckoutSession{
		ID:              id,
		URL:             "https://checkout.test/" + id,
		PaymentIntentID: "pi_" + id,
		Metadata:        req.Metadata,
	}
	g.sessions[id] = session
	g.requests = append(g.requests, req)
	return session, nil
}

func (g *fakeGateway) GetCheckoutSession(_ context.Context, id string) (*payment.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessions[id], nil
}

func (g *fakeGateway) GetPaymentIntent(_ context.Context, id string) (*payment.PaymentIntent, error) {
	return &payment.PaymentIntent{ID: id, Status: payment.IntentSucceeded, Amount: 0, Currency: "inr"}, nil
}

// setupTestServer wires the full stack against pool the way cmd/api does.
func setupTestServer(t *testing.T, pool *pgxpool.Pool, gateway payment.Gateway) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	imageDir := t.TempDir()

	users := repository.NewUserRepository(pool, logger)
	products := repository.NewProductRepository(pool, logger)
	orders := repository.NewOrderRepository(pool, logger)

	tokens := auth.NewTokenManager("integration-secret", time.Hour)
	images := storage.NewFileStore(imageDir, "http://localhost:4000", logger)

	return router.New(router.Handlers{
		Auth:    handler.NewAuthHandler(service.NewAuthService(users, tokens, true, logger), logger),
		Product: handler.NewProductHandler(service.NewProductService(products, images, logger), logger),
		Cart:    handler.NewCartHandler(service.NewCartService(users, products, logger), logger),
		Order:   handler.NewOrderHandler(service.NewOrderService(orders, users, products, logger), logger),
		Checkout: handler.NewCheckoutHandler(service.NewCheckoutService(gateway, orders, users, service.CheckoutConfig{
			Currency:    "inr",
			FrontendURL: "http://shop.test",
		}, logger), logger),
	}, tokens, imageDir, logger)
}
