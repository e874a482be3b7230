package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mariajose2398/SIDM/internal/adapters/export"
	"github.com/mariajose2398/SIDM/internal/app"
	"github.com/mariajose2398/SIDM/internal/config"
	"github.com/mariajose2398/SIDM/internal/registry"
	"github.com/mariajose2398/SIDM/pkg/logger"
	"github.com/mariajose2398/SIDM/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, "failed to load config", logger.Error(err))
		os.Exit(1)
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	for _, name := range cfg.Histograms {
		if !registry.Has(name) {
			log.Error(ctx, "unknown histogram in config", logger.String("histogram", name))
			os.Exit(1)
		}
	}

	var srv *http.Server
	if cfg.MetricsEnabled {
		srv = startMetricsServer(ctx, cfg.Addr)
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithEventCount(cfg.EventCount),
		app.WithBatchSize(cfg.BatchSize),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithFeedCapacity(cfg.FeedCapacity),
		app.WithSeed(cfg.Seed),
		app.WithWeightScale(cfg.WeightScale),
		app.WithHistograms(cfg.Histograms),
	)

	if err := svc.Run(ctx); err != nil {
		log.Error(ctx, "fill run failed", logger.Error(err))
		os.Exit(1)
	}

	if err := export.NewWriter(cfg.OutputDir).WriteSet(ctx, svc.Results().Set(ctx)); err != nil {
		log.Error(ctx, "export failed", logger.Error(err))
		os.Exit(1)
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(ctx, "metrics server shutdown failed", logger.Error(err))
		}
	}

	log.Info(ctx, "run finished",
		logger.String("output", cfg.OutputDir),
		logger.Uint64("entries", svc.Results().TotalEntries(ctx)),
	)
}

// startMetricsServer serves /metrics and /healthz while the run lasts.
func startMetricsServer(ctx context.Context, addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Get().Info(ctx, "starting metrics server", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Get().Error(ctx, "metrics server failed", logger.Error(err))
		}
	}()

	return srv
}
