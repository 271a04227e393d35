package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"

	"insurance/internal/featureflag"
	insurancehandler "insurance/internal/insurance/handler"
	insurancemetrics "insurance/internal/insurance/metrics"
	"insurance/internal/insurance/service"
	"insurance/internal/insurance/store"
	"insurance/internal/platform/config"
	"insurance/internal/platform/database"
	"insurance/internal/platform/httpserver"
	"insurance/internal/platform/logger"
	"insurance/internal/platform/metrics"
	"insurance/internal/platform/redis"
	"insurance/internal/vehicle"
	"insurance/pkg/platform/tx"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal packages.
func main() {
	if err := run(); err != nil {
		slog.Error("insurance service stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	stores, closeStores, err := buildStores(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeStores()

	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	var flagClient goredis.Cmdable
	if rdb != nil {
		defer rdb.Close()
		flagClient = rdb.Client
	}

	flags, closeFlags, err := featureflag.FromConfig(cfg.FeatureFlags, flagClient, log)
	if err != nil {
		return fmt.Errorf("feature flags: %w", err)
	}
	defer func() { _ = closeFlags() }()

	vehicles, err := vehicle.New(cfg.Vehicle,
		vehicle.WithLogger(log),
		vehicle.WithMetrics(vehicle.NewMetrics(reg)),
	)
	if err != nil {
		return fmt.Errorf("vehicle client: %w", err)
	}

	svc := service.New(stores.persons, stores.policies, stores.details, vehicles,
		service.WithLogger(log),
		service.WithMetrics(insurancemetrics.New(reg)),
		service.WithFeatureFlags(flags),
		service.WithReadTx(stores.readTx),
		service.WithConcurrency(cfg.EnrichConcurrency),
	)

	checks := []healthCheck{}
	if stores.db != nil {
		checks = append(checks, healthCheck{name: "database", check: stores.db.PingContext})
	}
	if rdb != nil {
		checks = append(checks, healthCheck{name: "redis", check: rdb.Health})
	}

	router := newRouter(routerDeps{
		logger:   log,
		metrics:  metrics.New(reg),
		registry: reg,
		handler:  insurancehandler.New(svc, log),
		checks:   checks,
	})
	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting insurance service", "addr", cfg.Addr, "in_memory", stores.db == nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down insurance service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

type storeSet struct {
	db       *sql.DB
	persons  service.PersonStore
	policies service.PolicyStore
	details  service.DetailsStore
	readTx   service.ReadTx
}

// buildStores opens PostgreSQL when DATABASE_URL is set and otherwise falls
// back to seeded in-memory stores for local development.
func buildStores(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (storeSet, func(), error) {
	if cfg.URL == "" {
		log.Warn("DATABASE_URL not set, using seeded in-memory stores")
		mem := store.NewInMemory()
		store.SeedDemoData(mem)
		return storeSet{persons: mem, policies: mem, details: mem, readTx: tx.NoopRunner{}}, func() {}, nil
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return storeSet{}, nil, fmt.Errorf("open database: %w", err)
	}
	pg := store.NewPostgres(db)
	return storeSet{
		db:       db,
		persons:  pg,
		policies: pg,
		details:  pg,
		readTx:   tx.NewReadOnlyRunner(db),
	}, func() { _ = db.Close() }, nil
}
