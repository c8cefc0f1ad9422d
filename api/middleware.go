package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/Domenick1991/flighttracker/internal/kafka"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-Id"
	requestIDKey    = "request_id"

	auditPublishTimeout = 500 * time.Millisecond
)

type AuditPublisher interface {
	PublishQuery(ctx context.Context, event kafka.QueryEvent) error
}

// RequestID keeps the caller's X-Request-Id or assigns a new one, and echoes
// it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Audit publishes a QueryEvent for every request after it is served. Each
// publish is bounded by auditPublishTimeout; failures are logged and do not
// affect the response.
func Audit(publisher AuditPublisher, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		event := kafka.QueryEvent{
			RequestID:  RequestIDFrom(c),
			Method:     c.Request.Method,
			Route:      route,
			Path:       c.Request.URL.Path,
			Status:     c.Writer.Status(),
			DurationMS: time.Since(start).Milliseconds(),
			At:         start.UTC(),
		}

		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), auditPublishTimeout)
		defer cancel()

		if err := publisher.PublishQuery(ctx, event); err != nil {
			logger.Warn("audit publish failed",
				slog.String("request_id", event.RequestID),
				slog.Any("error", err),
			)
		}
	}
}

// RequestLogger writes one record per request.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", RequestIDFrom(c)),
		)
	}
}
