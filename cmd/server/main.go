package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/crop-advisor-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/crop-advisor-service/internal/adapter/kafka"
	"github.com/couchcryptid/crop-advisor-service/internal/adapter/mapbox"
	"github.com/couchcryptid/crop-advisor-service/internal/adapter/tablefile"
	"github.com/couchcryptid/crop-advisor-service/internal/advisor"
	"github.com/couchcryptid/crop-advisor-service/internal/config"
	"github.com/couchcryptid/crop-advisor-service/internal/domain"
	"github.com/couchcryptid/crop-advisor-service/internal/observability"
	"github.com/couchcryptid/crop-advisor-service/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// A .env file is optional; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	table, err := tablefile.Load(cfg.CropTablePath)
	if err != nil {
		logger.Error("failed to load crop table", "error", err)
		os.Exit(1)
	}
	logger.Info("crop table loaded", "path", cfg.CropTablePath, "leaves", table.Len())

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheTTL, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_ttl", cfg.MapboxCacheTTL, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	adv := advisor.New(domain.NewEngine(table), geocoder, logger, metrics)

	checks := []sharedobs.ReadinessChecker{adv}
	opts := httpadapter.Options{
		Addr:           cfg.HTTPAddr,
		Delay:          cfg.RecommendDelay,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}

	var (
		p         *pipeline.Pipeline
		reader    *kafkaadapter.Reader
		writer    *kafkaadapter.Writer
		publisher *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		p = pipeline.New(reader, pipeline.NewTransformer(adv), writer, logger, metrics, cfg.BatchSize)
		checks = append(checks, p)
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		opts.Publisher = publisher
		logger.Info("kafka pipeline enabled",
			"brokers", cfg.KafkaBrokers,
			"request_topic", cfg.KafkaRequestTopic,
			"result_topic", cfg.KafkaResultTopic,
		)
	}

	srv := httpadapter.NewServer(opts, adv, httpadapter.AllReady(checks...), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if p != nil {
		g.Go(func() error {
			return p.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	runErr := g.Wait()

	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("service stopped with error", "error", runErr)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
