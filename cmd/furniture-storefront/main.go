package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/api"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/cache"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/config"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/health"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/images"
	repository "github.com/aaravmahajanofficial/furniture-storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/furniture-storefront/internal/services"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/telemetry"
	"github.com/aaravmahajanofficial/furniture-storefront/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	// Tracing setup
	shutdownTracer, err := telemetry.SetupTracer(ctx, cfg.Env, cfg.OTel)
	if err != nil {
		slog.Error("❌ Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	if err := repos.Migrate(ctx); err != nil {
		slog.Error("❌ Error migrating the database schema", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg.RedisConnect)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}
	defer redisClient.Close()

	rateLimit := repository.NewRateLimitRepo(redisClient, cfg.RateConfig)
	redisCache := cache.NewRedisCache(redisClient, cfg.Cache)

	// Image storage
	imageStore, err := images.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error setting up image storage", "error", err.Error())
		os.Exit(1)
	}

	var notifier service.NotificationService
	if cfg.SendGrid.APIKey != "" && cfg.SendGrid.ShopEmail != "" {
		emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
		notifier = service.NewNotificationService(emailService, cfg.SendGrid.ShopEmail)
	} else {
		slog.Warn("order emails disabled, sendgrid is not configured")
	}

	jwtKey := []byte(cfg.Security.JWTKey)
	userService := service.NewUserService(repos.User, rateLimit, jwtKey, cfg.Security.TokenTTL())
	productService := service.NewProductService(repos.Product, redisCache, imageStore)
	orderService := service.NewOrderService(repos.Order, notifier)
	reviewService := service.NewReviewService(repos.Review, repos.Product, redisCache)

	if err := userService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		slog.Warn("admin account not seeded", slog.String("username", cfg.Admin.Username), slog.String("error", err.Error()))
	}

	healthChecker, err := health.NewHealthHandler(cfg, imageStore)
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("uploads", cfg.Uploads.Driver))

	routerCfg := api.RouterConfig{
		JWTKey:      jwtKey,
		MaxUploadMB: cfg.Uploads.MaxSizeMB,
		Health:      healthChecker.Handler(),
	}
	if cfg.Uploads.Driver == "" || cfg.Uploads.Driver == images.DriverLocal {
		routerCfg.UploadsDir = cfg.Uploads.Dir
		routerCfg.UploadsURL = cfg.Uploads.URLPrefix
	}

	// Middleware chaining
	handler := api.NewRouter(api.Services{
		Users:    userService,
		Products: productService,
		Orders:   orderService,
		Reviews:  reviewService,
	}, routerCfg)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "furniture-storefront")

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
