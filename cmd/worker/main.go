package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joao-fontenele/msme-business-hub/internal/config"
	"github.com/joao-fontenele/msme-business-hub/internal/messaging"
	"github.com/joao-fontenele/msme-business-hub/internal/notify"
	"github.com/joao-fontenele/msme-business-hub/internal/telemetry"
	"github.com/joao-fontenele/msme-business-hub/internal/worker"
)

const serviceName = "worker"

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	if len(cfg.Kafka.Brokers) == 0 {
		logger.Error("KAFKA_BROKERS environment variable is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, serviceName, cfg.Telemetry.ServiceVersion, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	httpClient := telemetry.NewHTTPClient(10 * time.Second)
	notifier := notify.NewClient(cfg.Services.NotifyURL, httpClient)
	owner := worker.Owner{Email: cfg.Worker.OwnerEmail, Phone: cfg.Worker.OwnerPhone}

	consumer := messaging.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID,
		messaging.WithEventTypes(worker.HandledEvents()...),
		messaging.WithLogger(logger),
	)
	defer func() { _ = consumer.Close() }()

	eventHandler := worker.NewEventHandler(notifier, owner, logger)
	sweeper := worker.NewStockSweeper(worker.NewHubClient(cfg.Services.HubURL, httpClient), notifier, owner, logger)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting event consumer", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
		return consumer.Consume(ctx, eventHandler.Handle)
	})

	g.Go(func() error {
		logger.Info("starting stock sweeps", "interval", cfg.Worker.SweepInterval)
		return worker.StartSweeps(ctx, cfg.Worker.SweepInterval, sweeper, logger)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker error", "error", err)
		os.Exit(1)
	}

	logger.Info("worker stopped")
}
