package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/athena/internal/config"
	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/gin-gonic/gin"
)

const readHeaderTimeout = 5 * time.Second

// Server is the employee API.
type Server struct {
	log             *slog.Logger
	router          *gin.Engine
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

// New builds the API server and registers every route.
func New(log *slog.Logger, cfg config.HTTPConfig, staff StaffService, appMetrics *metrics.Metrics) *Server {
	log = log.With(slog.String("division", "api"))

	router := gin.New()
	router.Use(requestID(), requestLogger(log), instrument(appMetrics), recovery(log), cors(cfg.AllowedOrigins))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": msgRouteNotFound})
	})

	handler := NewEmployeeHandler(staff, log)

	router.GET("/", root)

	users := router.Group("/api/users")
	{
		users.GET("", handler.List)
		users.POST("", handler.Create)
		users.PUT("/:id", handler.Update)
		users.DELETE("/:id", handler.Delete)
	}

	return &Server{
		log:    log,
		router: router,
		httpServer: &http.Server{
			Addr:              net.JoinHostPort("", strconv.Itoa(cfg.Port)),
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Handler returns the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves requests until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.log.InfoContext(ctx, "Server is running", "addr", s.httpServer.Addr)
	s.log.InfoContext(ctx, "Available routes",
		"routes", []string{"GET /api/users", "POST /api/users", "PUT /api/users/:id", "DELETE /api/users/:id"})

	return serve(ctx, s.log, s.httpServer, s.shutdownTimeout)
}

func serve(ctx context.Context, log *slog.Logger, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to serve on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.InfoContext(ctx, "Shutting down server", "addr", srv.Addr)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server on %s: %w", srv.Addr, err)
	}

	return nil
}
