// backend-go/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/retail-ops/backend-go/internal/analytics"
	"github.com/freshmart/retail-ops/backend-go/internal/api"
	"github.com/freshmart/retail-ops/backend-go/internal/cache"
	"github.com/freshmart/retail-ops/backend-go/internal/config"
	"github.com/freshmart/retail-ops/backend-go/internal/dataset"
	"github.com/freshmart/retail-ops/backend-go/internal/recommend"
	"github.com/freshmart/retail-ops/backend-go/internal/service"
	"github.com/freshmart/retail-ops/backend-go/pkg/logger"
)

func main() {
	cfg := config.Load()

	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
		logger.SetLevel("debug")
	} else {
		gin.SetMode(gin.ReleaseMode)
		logger.SetLevel("info")
	}

	src, err := loadDataset(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load dataset")
	}
	logger.Log.Info().
		Str("source", cfg.Dataset.Source).
		Int("transactions", len(src.Transactions())).
		Int("stores", len(src.Stores())).
		Msg("Dataset loaded")

	kpiCache, err := cache.NewKPICache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("KPI cache unavailable, continuing without")
		kpiCache = cache.NewNoopKPICache()
	}

	spoilage := cfg.Spoilage
	modelFactory := func() analytics.SpoilageModel {
		return analytics.NewProbabilisticModel(spoilage.Probability, spoilage.MaxFraction, spoilage.Seed)
	}

	analyticsService := service.NewAnalyticsService(
		src,
		kpiCache,
		modelFactory,
		analytics.NewSeededEstimator(spoilage.Seed),
		cfg.Dataset.Workers,
	)

	router := api.NewRouter(&api.Services{
		Analytics:   analyticsService,
		Source:      src,
		Recommender: recommend.NewGeminiClient(cfg.Recommend),
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

// loadDataset builds the read-only data source per config: a JSON
// snapshot file, a one-shot Postgres load, or a generated dataset.
func loadDataset(cfg *config.Config) (dataset.Source, error) {
	switch cfg.Dataset.Source {
	case "file":
		return dataset.LoadFile(cfg.Dataset.FilePath)
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		return dataset.LoadPostgres(ctx, &cfg.Database)
	default:
		return dataset.Generate(dataset.GenerateOptions{
			Seed:         cfg.Dataset.GenerateSeed,
			Transactions: cfg.Dataset.GenerateSize,
		}), nil
	}
}
