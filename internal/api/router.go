// Package api assembles the storefront HTTP routes.
package api

import (
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/metrics"
	service "github.com/aaravmahajanofficial/furniture-storefront/internal/services"
)

type Services struct {
	Users    service.UserService
	Products service.ProductService
	Orders   service.OrderService
	Reviews  service.ReviewService
}

type RouterConfig struct {
	JWTKey      []byte
	MaxUploadMB int64
	// UploadsDir is served under UploadsURL when set.
	UploadsDir string
	UploadsURL string
	Health     http.Handler
}

// NewRouter returns the mux wrapped in the metrics middleware. Logging and
// tracing wrap the result in main.
func NewRouter(svc Services, cfg RouterConfig) http.Handler {

	authHandler := handlers.NewAuthHandler(svc.Users)
	userHandler := handlers.NewUserHandler(svc.Users)
	productHandler := handlers.NewProductHandler(svc.Products, cfg.MaxUploadMB)
	orderHandler := handlers.NewOrderHandler(svc.Orders)
	reviewHandler := handlers.NewReviewHandler(svc.Reviews)
	auth := middleware.NewAuthMiddleware(cfg.JWTKey)

	admin := func(h http.Handler) http.HandlerFunc {
		return auth.RequireAdmin(h)
	}

	routerMux := http.NewServeMux()

	routerMux.HandleFunc("POST /api/auth/login", authHandler.Login())
	routerMux.HandleFunc("POST /api/auth/register", authHandler.Register())
	routerMux.HandleFunc("GET /api/auth/me", auth.Authenticate(authHandler.Me()))
	routerMux.HandleFunc("POST /api/auth/change-password", auth.Authenticate(authHandler.ChangePassword()))

	routerMux.HandleFunc("GET /api/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("POST /api/products", admin(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/products/{id}", admin(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/products/{id}", admin(productHandler.DeleteProduct()))

	routerMux.HandleFunc("GET /api/products/{id}/reviews", reviewHandler.ListProductReviews())
	routerMux.HandleFunc("GET /api/products/{id}/rating", reviewHandler.GetProductRating())
	routerMux.HandleFunc("POST /api/reviews", auth.Authenticate(reviewHandler.CreateReview()))
	routerMux.HandleFunc("GET /api/admin/reviews", admin(reviewHandler.ListReviews()))
	routerMux.HandleFunc("PUT /api/admin/reviews/{id}", admin(reviewHandler.UpdateReview()))
	routerMux.HandleFunc("DELETE /api/admin/reviews/{id}", admin(reviewHandler.DeleteReview()))

	routerMux.HandleFunc("POST /api/orders", auth.Optional(orderHandler.CreateOrder()))
	routerMux.HandleFunc("GET /api/orders/mine", auth.Authenticate(orderHandler.ListMyOrders()))
	routerMux.HandleFunc("GET /api/orders", admin(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/orders/{id}", admin(orderHandler.GetOrder()))
	routerMux.HandleFunc("PATCH /api/orders/{id}/status", admin(orderHandler.UpdateOrderStatus()))
	routerMux.HandleFunc("DELETE /api/orders/{id}", admin(orderHandler.DeleteOrder()))
	routerMux.HandleFunc("GET /api/stats", admin(orderHandler.GetStats()))

	routerMux.HandleFunc("GET /api/users", admin(userHandler.ListUsers()))
	routerMux.HandleFunc("POST /api/users", admin(userHandler.CreateUser()))
	routerMux.HandleFunc("GET /api/users/{id}", admin(userHandler.GetUser()))
	routerMux.HandleFunc("PUT /api/users/{id}", admin(userHandler.UpdateUser()))
	routerMux.HandleFunc("DELETE /api/users/{id}", admin(userHandler.DeleteUser()))

	routerMux.Handle("GET /metrics", metrics.Handler())

	if cfg.Health != nil {
		routerMux.Handle("GET /health", cfg.Health)
	}

	if cfg.UploadsDir != "" {
		prefix := strings.TrimRight(cfg.UploadsURL, "/") + "/"
		routerMux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.UploadsDir))))
	}

	return metrics.Middleware(routerMux)
}
