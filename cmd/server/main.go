package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/config"
	"github.com/SAP-F-2025/quiz-service/internal/generator"
	"github.com/SAP-F-2025/quiz-service/internal/handlers"
	"github.com/SAP-F-2025/quiz-service/internal/middleware"
	"github.com/SAP-F-2025/quiz-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"github.com/SAP-F-2025/quiz-service/pkg"
	"github.com/SAP-F-2025/quiz-service/pkg/monitoring"
	"github.com/SAP-F-2025/quiz-service/pkg/security"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.Environment)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.LogError(err, "Failed to connect to database")
		os.Exit(1)
	}
	if err := postgres.AutoMigrate(db); err != nil {
		logger.LogError(err, "Failed to migrate database")
		os.Exit(1)
	}
	repo := postgres.NewRepository(db)
	defer repo.Close()

	cacheService := newCache(cfg, logger)

	publisher, err := cfg.Events.CreateEventPublisher(logger.Slog())
	if err != nil {
		logger.LogError(err, "Failed to create event publisher")
		os.Exit(1)
	}
	defer publisher.Close()

	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:         repo,
		Validator:    validator.New(),
		Generator:    newGenerator(cfg, logger),
		Publisher:    publisher,
		Cache:        cacheService,
		AnalyticsTTL: cfg.Analytics.CacheTTL,
		Logger:       logger.Slog(),
	})

	monitoring.Init()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		utils.RequestID(),
		utils.LoggerMiddleware(logger),
		utils.ContextLogger(logger),
		security.Secure(),
		security.CORS(cfg.Security.AllowedOrigins),
		monitoring.MetricsMiddleware(),
	)

	done := make(chan struct{})
	publicLimiter := security.NewIPRateLimiter(cfg.Security.PublicRateLimit, cfg.Security.PublicRateWindow)
	publicLimiter.StartCleanup(done)
	generateLimiter := security.NewIPRateLimiter(cfg.Security.GenerateRateLimit, time.Minute)
	generateLimiter.StartCleanup(done)

	verifier := middleware.NewCasdoorVerifier(cfg.Auth)
	handlers.NewHandlerManager(serviceManager, repo, logger).SetupRoutes(router, handlers.RouteMiddleware{
		Auth:          middleware.RequireAuth(verifier, logger),
		OptionalAuth:  middleware.OptionalAuth(verifier),
		PublicLimit:   publicLimiter.Middleware(),
		GenerateLimit: generateLimiter.Middleware(),
		Metrics:       monitoring.PrometheusHandler(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting quiz service", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LogError(err, "Server failed")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	close(done)

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.LogError(err, "Server forced to shutdown")
	}
}

// newCache connects Redis when REDIS_URL is set and otherwise runs without
// an analytics cache.
func newCache(cfg *config.Config, logger utils.Logger) cache.CacheService {
	client, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, analytics cache disabled", "error", err)
		return cache.NewNoopCache()
	}
	if client == nil {
		logger.Info("REDIS_URL not set, analytics cache disabled")
		return cache.NewNoopCache()
	}

	var zapLogger *zap.Logger
	if cfg.IsProduction() {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		zapLogger = zap.NewNop()
	}
	return cache.NewRedisCache(client, zapLogger)
}

func newGenerator(cfg *config.Config, logger utils.Logger) *generator.Generator {
	var client generator.LLMClient
	switch cfg.Generator.Mode {
	case "mock":
		logger.Info("Using mock question generator")
		client = generator.NewMockClient()
	default:
		client = generator.NewAPIClient(cfg.Generator.APIKey, cfg.Generator.Model, cfg.Generator.MaxTokens, logger.Slog())
	}

	return generator.New(client, cfg.Generator.Model, generator.Options{
		CacheSize:   cfg.Generator.CacheSize,
		CacheTTL:    cfg.Generator.CacheTTL,
		MinInterval: cfg.Generator.MinInterval,
	}, logger.Slog())
}
