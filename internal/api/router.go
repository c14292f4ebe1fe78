package api

import (
	"net/http"

	_ "github.com/aaravmahajanofficial/catalog-cart-service/docs"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/api/handlers"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/metrics"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/telemetry"
	httpSwagger "github.com/swaggo/http-swagger"
)

const serviceName = "catalog-cart-service"

type Handlers struct {
	Product *handlers.ProductHandler
	Cart    *handlers.CartHandler
	Health  http.Handler
}

// NewRouter mounts every route and wraps the mux in the middleware chain:
// logging, then tracing, then metrics closest to the mux.
func NewRouter(h Handlers) http.Handler {
	routerMux := http.NewServeMux()

	routerMux.HandleFunc("GET /products", h.Product.ListProducts())
	routerMux.HandleFunc("POST /products", h.Product.CreateProduct())
	routerMux.HandleFunc("GET /products/{id}", h.Product.GetProduct())
	routerMux.HandleFunc("PATCH /products/{id}", h.Product.UpdateProduct())
	routerMux.HandleFunc("DELETE /products/{id}", h.Product.DeleteProduct())
	routerMux.HandleFunc("GET /products/category/{category}", h.Product.ListByCategory())
	routerMux.HandleFunc("GET /products/search/{key}", h.Product.SearchProducts())

	routerMux.HandleFunc("POST /products/add-to-cart", h.Cart.AddToCart())
	routerMux.HandleFunc("POST /products/increase-cart", h.Cart.IncreaseCartItem())
	routerMux.HandleFunc("POST /products/decrease-cart", h.Cart.DecreaseCartItem())
	routerMux.HandleFunc("POST /products/remove-from-cart", h.Cart.RemoveFromCart())

	routerMux.Handle("GET /metrics", metrics.Handler())
	if h.Health != nil {
		routerMux.Handle("GET /health", h.Health)
	}
	routerMux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = telemetry.Middleware(serviceName)(handler)
	handler = middleware.Logging(handler)

	return handler
}
