// Package gateway is the HTTP client of the flight tracker API. Every query
// funnels through one typed GET that never fails loudly: a failed fetch yields
// an empty collection, a *Failure describing the cause and a log record.
package gateway

import (
	"cmp"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

var errBaseAddressUnset = errors.New("server base address is not set")

type Client struct {
	httpClient  *http.Client
	logger      *slog.Logger
	baseAddress string
}

type Option func(c *Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient binds the client to baseAddress (scheme, host and port). The
// address cannot be changed afterwards; an empty one makes every fetch fail
// with FailureConfiguration.
func NewClient(baseAddress string, opts ...Option) *Client {
	c := &Client{
		baseAddress: strings.TrimRight(strings.TrimSpace(baseAddress), "/"),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.httpClient = cmp.Or(c.httpClient, http.DefaultClient)
	c.logger = cmp.Or(c.logger, slog.Default())

	return c
}

func (c *Client) BaseAddress() string {
	return c.baseAddress
}

func (c *Client) get(ctx context.Context, path string) ([]byte, *Failure) {
	if c.baseAddress == "" {
		return nil, &Failure{Kind: FailureConfiguration, Path: path, Cause: errBaseAddressUnset}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseAddress+path, nil)
	if err != nil {
		return nil, &Failure{Kind: FailureConfiguration, Path: path, Cause: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Failure{Kind: FailureTransport, Path: path, Cause: err}
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Failure{Kind: FailureTransport, Path: path, StatusCode: resp.StatusCode, Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Failure{Kind: FailureProtocol, Path: path, StatusCode: resp.StatusCode, Body: excerpt(body)}
	}

	return body, nil
}

func (c *Client) report(ctx context.Context, f *Failure) {
	attrs := []slog.Attr{
		slog.String("path", f.Path),
		slog.String("kind", f.Kind.String()),
	}

	if f.StatusCode != 0 {
		attrs = append(attrs, slog.Int("status", f.StatusCode))
	}

	if f.Body != "" {
		attrs = append(attrs, slog.String("body", f.Body))
	}

	if f.Cause != nil {
		attrs = append(attrs, slog.String("error", f.Cause.Error()))
	}

	c.logger.LogAttrs(ctx, slog.LevelError, "fetch failed", attrs...)
}
