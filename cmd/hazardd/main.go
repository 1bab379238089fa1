package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/hazard-zone-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/hazard-zone-service/internal/adapter/kafka"
	"github.com/couchcryptid/hazard-zone-service/internal/config"
	"github.com/couchcryptid/hazard-zone-service/internal/dataset"
	"github.com/couchcryptid/hazard-zone-service/internal/observability"
	"github.com/couchcryptid/hazard-zone-service/internal/query"
	"github.com/couchcryptid/hazard-zone-service/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Fail fast: a bad dataset must never serve traffic.
	ds, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		logger.Error("failed to load hazard-zone dataset", "path", cfg.DatasetPath, "error", err)
		os.Exit(1)
	}
	repo := repository.New(ds)
	metrics.DatasetZones.Set(float64(ds.Len()))
	logger.Info("hazard-zone dataset loaded", "path", cfg.DatasetPath, "version", ds.Version(), "zones", ds.Len())

	// Match-event feed is feature-flagged via KAFKA_BROKERS / MATCH_EVENTS_ENABLED.
	var publisher query.MatchPublisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.MatchEventsEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		metrics.MatchEventsEnabled.Set(1)
		logger.Info("match event feed enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaMatchTopic)
	} else {
		logger.Info("match event feed disabled")
	}

	svc := query.NewService(repo, publisher, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, repo, cfg.QueryMaxLimit, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	if cfg.DatasetReloadInterval > 0 {
		watcher := dataset.NewWatcher(cfg.DatasetPath, cfg.DatasetReloadInterval, repo, nil, logger, metrics)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error("dataset watcher error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
