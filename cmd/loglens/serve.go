package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/loglens/loglens/internal/api"
	"github.com/loglens/loglens/internal/cache"
	"github.com/loglens/loglens/internal/config"
	"github.com/loglens/loglens/internal/engine"
	"github.com/loglens/loglens/internal/metrics"
	"github.com/loglens/loglens/internal/repo"
	"github.com/loglens/loglens/internal/rules"
	"github.com/loglens/loglens/internal/service"
	"github.com/loglens/loglens/internal/utils"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			rulesFlag, _ := cmd.Flags().GetString("rules")
			return runServe(configPath, rulesFlag)
		},
	}
}

func runServe(configPath, rulesFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	rulesPath := cfg.Rules.Path
	if rulesFlag != "" {
		rulesPath = rulesFlag
	}

	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)
	logger.Info("starting loglens", slog.String("address", cfg.Server.Address))

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return err
	}

	cacheProvider, err := buildCache(cfg.Cache, logger)
	if err != nil {
		return err
	}
	defer cacheProvider.Close()

	registry, err := rules.Load(rulesPath)
	if err != nil {
		return err
	}
	logger.Info("rule base loaded", slog.Int("rules", registry.Len()))

	usage := repo.NewUsageReporter(cfg.Usage.Endpoint, cfg.Usage.Timeout, logger)
	pipeline := engine.NewPipeline(logger, registry)
	analyzer := service.NewAnalyzer(logger, pipeline, cacheProvider, cfg.Cache.TTL, usage)

	server, err := api.NewServer(logger, analyzer, cfg.Server.Address, api.Limits{
		BatchMaxLines:    cfg.Limits.BatchMaxLines,
		IncidentMaxLines: cfg.Limits.IncidentMaxLines,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metricsServer *http.Server
	if cfg.Server.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Server.MetricsAddress,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		go func() {
			logger.Info("metrics server listening", slog.String("address", cfg.Server.MetricsAddress))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server exited", slog.Any("error", err))
				stop()
			}
		}()
	}

	go func() {
		if serveErr := server.Start(); serveErr != nil {
			logger.Error("api server exited", slog.Any("error", serveErr))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("api server shutdown", slog.Any("error", err))
	}

	if metricsServer != nil {
		metricsCtx, cancelMetrics := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(metricsCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server shutdown", slog.Any("error", err))
		}
		cancelMetrics()
	}

	// Give remaining goroutines time to finish logging
	time.Sleep(100 * time.Millisecond)
	logger.Info("loglens stopped")
	return nil
}

func buildCache(cfg config.CacheConfig, logger *slog.Logger) (cache.Provider, error) {
	switch cfg.Backend {
	case "valkey":
		provider, err := cache.NewValkeyProvider(cache.ValkeyConfig{
			Addr:         cfg.Addr,
			Username:     cfg.Username,
			Password:     cfg.Password,
			DB:           cfg.DB,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			TLS:          cfg.TLS,
		})
		if err != nil {
			logger.Warn("valkey cache unavailable, falling back to in-memory", slog.Any("error", err))
			return cache.NewMemoryProvider(), nil
		}
		return provider, nil
	case "memory":
		return cache.NewMemoryProvider(), nil
	default:
		return cache.NoopProvider{}, nil
	}
}
