package main

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joao-fontenele/msme-business-hub/internal/api"
	"github.com/joao-fontenele/msme-business-hub/internal/billing"
	"github.com/joao-fontenele/msme-business-hub/internal/config"
	"github.com/joao-fontenele/msme-business-hub/internal/hub"
	"github.com/joao-fontenele/msme-business-hub/internal/messaging"
	"github.com/joao-fontenele/msme-business-hub/internal/payments"
	"github.com/joao-fontenele/msme-business-hub/internal/records"
	"github.com/joao-fontenele/msme-business-hub/internal/store"
	"github.com/joao-fontenele/msme-business-hub/internal/telemetry"
)

const serviceName = "hub"

func main() {
	ctx := context.Background()

	cfg, err := config.Load("8081")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, serviceName, cfg.Telemetry.ServiceVersion, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider(serviceName, cfg.Telemetry.ServiceVersion)
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	kv, closeKV, err := store.OpenKV(ctx, cfg.Store)
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer func() { _ = closeKV() }()

	metrics, err := hub.NewMetrics(nil)
	if err != nil {
		logger.Error("failed to create metrics", "error", err)
		os.Exit(1)
	}

	seed := time.Now().UnixNano()
	deps := hub.Deps{
		Store:    store.New(kv, cfg.Store.Prefix, logger),
		Factory:  records.NewFactory(time.Now, time.Local),
		Verifier: payments.NewRandomVerifier(rand.New(rand.NewSource(seed)), cfg.Hub.SuccessRate),
		Rand:     rand.New(rand.NewSource(seed + 1)),
		Metrics:  metrics,
		Logger:   logger,
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := messaging.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() { _ = producer.Close() }()
		deps.Publisher = producer
	}

	h, err := hub.New(ctx, deps, hub.Config{
		VerifyDelay:  cfg.Hub.VerifyDelay,
		ChatDelayMin: cfg.Hub.ChatDelayMin,
		ChatDelayMax: cfg.Hub.ChatDelayMax,
	})
	if err != nil {
		logger.Error("failed to start hub", "error", err)
		os.Exit(1)
	}

	business := billing.Business{
		Name:    cfg.Business.Name,
		Address: cfg.Business.Address,
		Phone:   cfg.Business.Phone,
	}
	chatLimiter := api.NewClientLimiter(cfg.Chat.RatePerSecond, cfg.Chat.Burst)
	handler := api.NewHandler(h, business, chatLimiter, logger)

	mux := http.NewServeMux()
	handler.Register(mux)
	mux.Handle("GET /metrics", metricsHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.WithCORS(telemetry.ServerHandler(mux, serviceName), cfg.CORSOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting hub service", "port", cfg.Port, "store", cfg.Store.Backend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
