package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/riskforge/payrisk/configs"
	"github.com/riskforge/payrisk/internal/handlers"
	"github.com/riskforge/payrisk/internal/ml"
	"github.com/riskforge/payrisk/internal/services"
	"github.com/riskforge/payrisk/pkg"
	middleware "github.com/riskforge/payrisk/pkg/middlewares"
	"go.uber.org/zap"
)

// NewApp wires dependencies, builds the Gin engine, and returns an *http.Server and a cleanup func.
// It reads configuration from environment variables via configs.Load.
func NewApp(ctx context.Context, logger *zap.Logger) (*http.Server, func(), error) {
	// Load config
	cfg, err := configs.Load(logger)
	if err != nil {
		return nil, nil, err
	}

	// Audit publisher (no-op unless Kafka brokers are configured)
	publisher, err := services.NewAuditPublisher(logger, ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// The model artifact is loaded once and shared read-only across
	// requests. A missing artifact keeps the API up; /predict answers 503
	// until a model has been trained.
	var predictor services.Predictor
	if art, err := ml.LoadArtifact(cfg.ModelPath); err != nil {
		logger.Warn("starting without a model", zap.Error(err))
	} else {
		predictor = services.NewPredictor(logger, art, cfg.Threshold, publisher)
		logger.Info("model loaded", zap.String(pkg.RunId, art.RunID), zap.String("path", cfg.ModelPath))
	}

	// Setup dependencies
	baseHandler := handlers.NewBaseHandler(logger, func() bool { return predictor != nil })
	predictHandler := handlers.NewPredictHandler(logger, predictor)
	limiter := pkg.NewRequestLimiter(cfg.RateLimitRPS, 0, logger)

	// Router
	r := gin.Default()
	r.Use(middleware.TraceID())
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimit(limiter))

	predictHandler.RegisterRoutes(r)
	baseHandler.RegisterRoutes(r)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	cleanup := func() {
		// close kafka producer
		publisher.Close()
	}

	return srv, cleanup, nil
}
