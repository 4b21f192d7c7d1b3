package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/config"
	impl_sandbox "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/gateway/sandbox"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	addr := flag.String("addr", cfg.Sandbox.Addr, "listen address")
	metricsAddr := flag.String("metrics-addr", cfg.Metrics.Addr, "prometheus listen address (empty disables)")
	flag.Parse()

	logger := telemetry.NewLogger("bank-sandbox", cfg.LogLevel, os.Stdout)
	slog.SetDefault(logger)

	bank := impl_sandbox.NewBank(nil)
	impl_sandbox.Seed(bank)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           impl_sandbox.NewRouter(bank, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	var metricsSrv *http.Server
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: *metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("metrics server listening", slog.String("addr", *metricsAddr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", slog.Any("error", err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("sandbox listening", slog.String("addr", *addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("sandbox server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("sandbox shutdown", slog.Any("error", err))
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}
