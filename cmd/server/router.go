package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"insurance/internal/platform/metrics"
	"insurance/internal/platform/middleware"
	"insurance/pkg/platform/httputil"
	"insurance/pkg/platform/middleware/metadata"
	"insurance/pkg/platform/middleware/requesttime"
)

const healthCheckTimeout = 2 * time.Second

type healthCheck struct {
	name  string
	check func(ctx context.Context) error
}

type routerDeps struct {
	logger   *slog.Logger
	metrics  *metrics.Metrics
	registry *prometheus.Registry
	handler  interface{ Register(r chi.Router) }
	checks   []healthCheck
}

func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Recovery(deps.logger))
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Latency(deps.metrics))

	r.Get("/health", healthHandler(deps.checks))
	r.Handle("/metrics", promhttp.HandlerFor(deps.registry, promhttp.HandlerOpts{}))
	deps.handler.Register(r)
	return r
}

func healthHandler(checks []healthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		status := http.StatusOK
		components := make(map[string]string, len(checks))
		for _, c := range checks {
			if err := c.check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				components[c.name] = "down"
				continue
			}
			components[c.name] = "up"
		}
		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		httputil.WriteJSON(w, status, map[string]any{
			"status":     overall,
			"components": components,
		})
	}
}
