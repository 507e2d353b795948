package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/neuroautomation/neuro-backend/internal/api"
	"github.com/neuroautomation/neuro-backend/internal/bootstrap"
	"github.com/neuroautomation/neuro-backend/internal/observability"
	"github.com/neuroautomation/neuro-backend/internal/store"
)

const serviceName = "neuro-api"

func main() {
	var cfg api.Config
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	base, _ := observability.NewLogger(cfg.LogLevel)
	defer base.Sync()
	log := observability.ServiceLogger(base, serviceName)

	// Replace global logger
	zap.ReplaceGlobals(log)

	reg := prometheus.DefaultRegisterer
	observability.RegisterAll(reg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv := &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: mux,
		}
		go func() {
			log.Info("metrics server starting", zap.String("addr", cfg.MetricsAddr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", zap.Error(err))
			}
		}()
		defer metricsSrv.Close()
	}

	connector := bootstrap.MongoConnector(store.NewConnector(cfg.ServerSelectionTimeout, serviceName))
	svc := bootstrap.New(cfg, connector, log)
	if err := svc.Start(ctx); err != nil {
		log.Fatal("API server failed", zap.Error(err))
	}

	<-ctx.Done()
	log.Info("stopping API server")
	if err := svc.Close(); err != nil {
		log.Warn("stop", zap.Error(err))
	}
}
