package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMonitoringHandler exposes /metrics from the given registry and /healthz for the store.
func NewMonitoringHandler(log *slog.Logger, reg *prometheus.Registry, store StorePinger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		Registry:          reg,
	}))
	mux.Handle("/healthz", NewHealthChecker(store, log))

	return mux
}

// StartMonitoringServer serves the monitoring endpoints on port until ctx is cancelled.
func StartMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	store StorePinger,
	port int,
	shutdownTimeout time.Duration,
) error {
	log = log.With(slog.String("division", "monitoring"))

	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(port)),
		Handler:           NewMonitoringHandler(log, reg, store),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.InfoContext(ctx, "Starting monitoring server", "addr", srv.Addr)

	return serve(ctx, log, srv, shutdownTimeout)
}
