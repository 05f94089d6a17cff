package router

import (
	"net/http"

	"tradestreet-api/internal/handler"
	"tradestreet-api/internal/middleware"
	"tradestreet-api/internal/model"
	"tradestreet-api/internal/storage"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Checkout *handler.CheckoutHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// imageDir, when set, is served under /images/.
func New(h Handlers, tokens middleware.TokenVerifier, imageDir string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware order: RequestID -> Recovery -> Logging -> CORS
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Root"))
	})

	if imageDir != "" {
		r.Handle(storage.PublicPath+"*", http.StripPrefix(storage.PublicPath, http.FileServer(http.Dir(imageDir))))
	}

	r.Post("/signup", h.Auth.Signup)
	r.Post("/login", h.Auth.Login)

	r.Get("/allproducts", h.Product.GetAll)
	r.Get("/newcollections", h.Product.NewCollections)
	r.Get("/popularinwomen", h.Product.PopularInWomen)
	r.Post("/relatedproducts", h.Product.Related)

	// The processor redirects the shopper here without a session token.
	r.Get("/payment-success", h.Checkout.PaymentSuccess)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, logger))

		r.Post("/addtocarttwo", h.Cart.Add)
		r.Post("/removefromcarttwo", h.Cart.Remove)
		r.Post("/getcarttwo", h.Cart.Get)

		r.Post("/placeorder", h.Order.Place)
		r.Get("/fetchorders", h.Order.ListMine)
		r.Post("/create-checkout-session", h.Checkout.CreateSession)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleAdmin, logger))

			r.Post("/upload", h.Product.Upload)
			r.Post("/addproduct", h.Product.AddProduct)
			r.Post("/removeproduct", h.Product.RemoveProduct)

			r.Get("/orderstatus", h.Order.ListAll)
			r.Post("/orderstatus/update", h.Order.UpdateStatus)
		})
	})

	return r
}
