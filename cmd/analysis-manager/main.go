// analysis-manager runs the size recommendation service: an HTTP API for
// submitting and polling analysis jobs, backed by the vision extraction
// client and the fit scoring engine.
package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sizefit-engine/internal/common/config"
	"sizefit-engine/internal/common/logger"
	"sizefit-engine/internal/common/observability"
	"sizefit-engine/internal/extraction/gemini"
	"sizefit-engine/internal/fitting/scoring"
	"sizefit-engine/internal/jobs"
	"sizefit-engine/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	log := logger.NewZapAdapter(zapLogger)

	log.Info("starting analysis manager", map[string]interface{}{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	extractor, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:  cfg.Vision.APIKey,
		Model:   cfg.Vision.Model,
		Timeout: time.Duration(cfg.Vision.Timeout) * time.Millisecond,
	}, log)
	if err != nil {
		log.WithError(err).Error("failed to create extraction client", nil)
		os.Exit(1)
	}

	engine := scoring.NewEngine(log)

	orchestrator := jobs.New(extractor, engine, log, obs, jobs.Settings{
		SweepInterval: time.Duration(cfg.Analysis.SweepInterval) * time.Millisecond,
		JobMaxAge:     time.Duration(cfg.Analysis.JobMaxAge) * time.Millisecond,
	})
	defer orchestrator.Close()

	api := server.New(orchestrator, engine, log)

	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           metricsHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("api server listening", map[string]interface{}{"addr": apiServer.Addr})
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("api server failed", zap.Error(err))
		}
	}()

	go func() {
		log.Info("metrics server listening", map[string]interface{}{"addr": metricsServer.Addr})
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("metrics server failed", nil)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("api server shutdown failed", nil)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("metrics server shutdown failed", nil)
	}

	log.Info("analysis manager stopped", nil)
}

// metricsHandler serves Prometheus metrics, liveness, and pprof on the
// operational port, keeping them off the public API surface.
func metricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}
