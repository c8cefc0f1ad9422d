package bootstrap

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Domenick1991/flighttracker/api"
	"github.com/Domenick1991/flighttracker/config"
	"github.com/Domenick1991/flighttracker/internal/service/tracker"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.json
var openAPIDoc []byte

const shutdownTimeout = 5 * time.Second

type options struct {
	logger    *slog.Logger
	publisher api.AuditPublisher
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithAuditPublisher turns on the audit middleware.
func WithAuditPublisher(publisher api.AuditPublisher) Option {
	return func(o *options) { o.publisher = publisher }
}

// Run serves the tracker API and blocks until ctx is canceled or the server
// fails.
func Run(ctx context.Context, cfg *config.Config, svc tracker.TrackerUseCase, opts ...Option) error {
	o := newOptions(opts)
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewHandler(cfg, svc, opts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		o.logger.Info("http server listening", slog.String("address", cfg.HTTP.Address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http %s: %w", cfg.HTTP.Address, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		o.logger.Info("http server stopped")
		return nil
	}
}

// NewHandler builds the gin engine with the tracker routes and, when enabled,
// the Swagger UI.
func NewHandler(cfg *config.Config, svc tracker.TrackerUseCase, opts ...Option) http.Handler {
	o := newOptions(opts)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), api.RequestID(), api.RequestLogger(o.logger))
	if o.publisher != nil {
		router.Use(api.Audit(o.publisher, o.logger))
	}

	api.NewTrackerHandler(svc, o.logger).Register(&router.RouterGroup)

	if cfg.HTTP.Swagger {
		ui := httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))
		router.GET("/swagger/*any", func(c *gin.Context) {
			if c.Param("any") == "/doc.json" {
				c.Data(http.StatusOK, "application/json; charset=utf-8", openAPIDoc)
				return
			}
			ui.ServeHTTP(c.Writer, c.Request)
		})
	}

	return router
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
