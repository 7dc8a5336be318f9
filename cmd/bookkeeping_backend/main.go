package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/adapters/cache"
	"github.com/SscSPs/bookkeeping_app/internal/adapters/ecb"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/core/services"
	"github.com/SscSPs/bookkeeping_app/internal/handlers"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/bookkeeping_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/bookkeeping_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Bookkeeping Backend API
// @version 1.0
// @description Records invoices, bills and other incomes and converts their amounts to EUR using ECB reference rates.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Database migrations failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rateCache, err := cache.Open(ctx, cfg.RateCacheDriver, cfg.RedisURL)
	if err != nil {
		logger.Error("Failed to initialize rate cache", slog.String("driver", cfg.RateCacheDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	var rateWrap func(portsrepo.ExchangeRateRepositoryFacade) portsrepo.ExchangeRateRepositoryFacade
	if rateCache != nil {
		defer rateCache.Close()
		rateWrap = func(next portsrepo.ExchangeRateRepositoryFacade) portsrepo.ExchangeRateRepositoryFacade {
			return cache.NewCachedExchangeRateRepository(next, rateCache, cfg.RateCacheTTL)
		}
	}
	logger.Info("Rate cache ready", slog.String("driver", cfg.RateCacheDriver))

	repos := pgsql.NewRepositoryProvider(dbPool, rateWrap)

	ecbClient := ecb.NewClient(ecb.Config{
		BaseURL:        cfg.ECBBaseURL,
		TargetCurrency: cfg.ECBTargetCurrency,
		SingleTimeout:  cfg.ECBSingleTimeout,
		RangeTimeout:   cfg.ECBRangeTimeout,
	}, &http.Client{}, logger)

	serviceContainer := services.NewServiceContainer(cfg, repos, ecbClient)

	limiterInstance, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, middleware.RateLimit(limiterInstance))

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
