package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/rogerio-castellano/product-catalog/internal/http/handlers"
)

// NewRouter builds the versioned API surface. The v1 product routes are fully
// synchronous; v2 adds pagination and queues stock updates for the background
// processor.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(RateLimit)

	r.Get("/healthz", handlers.HealthHandler)
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", handlers.GetProductsHandler)
		r.Post("/", handlers.CreateProductHandler)
		r.Get("/{id}", handlers.GetProductByIDHandler)
		r.Patch("/{id}/stock", handlers.UpdateStockHandler)
	})

	r.Route("/api/v2/products", func(r chi.Router) {
		r.Get("/", handlers.GetPagedProductsHandler)
		r.Post("/", handlers.CreateProductHandler)
		r.Get("/{id}", handlers.GetProductByIDHandler)
		r.Patch("/{id}/stock", handlers.EnqueueStockUpdateHandler)
	})

	return r
}
