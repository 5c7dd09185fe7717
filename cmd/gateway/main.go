package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joao-fontenele/msme-business-hub/internal/api"
	"github.com/joao-fontenele/msme-business-hub/internal/config"
	"github.com/joao-fontenele/msme-business-hub/internal/gateway"
	"github.com/joao-fontenele/msme-business-hub/internal/telemetry"
)

const serviceName = "gateway"

func main() {
	ctx := context.Background()

	cfg, err := config.Load("8080")
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

	hubProxy := gateway.NewServiceProxy(cfg.Services.HubURL, telemetry.NewHTTPClient(10*time.Second))
	handler := gateway.NewHandler(hubProxy, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/", telemetry.WithHTTPRoute(handler.HandleAPI))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.WithCORS(telemetry.ServerHandler(mux, serviceName), cfg.CORSOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting gateway service", "port", cfg.Port, "hub", cfg.Services.HubURL)
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
