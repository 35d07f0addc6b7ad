package tado

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// WithLogger configures a structured logger for the client.
// When set, the client logs API requests and responses at debug level,
// token changes at info level and swallowed failures at warn level.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	client, _ := tado.NewClient(tado.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// LoggingTransport wraps an http.RoundTripper and logs requests/responses.
// Query strings are dropped from the logged URL.
type LoggingTransport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

// RoundTrip implements http.RoundTripper with logging.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()

	if t.Logger != nil {
		t.Logger.LogAttrs(req.Context(), slog.LevelDebug, "http_request",
			slog.String("method", req.Method),
			slog.String("url", redactURL(req.URL.String())),
		)
	}

	resp, err := base.RoundTrip(req)
	duration := time.Since(start)

	if t.Logger != nil {
		if err != nil {
			t.Logger.LogAttrs(req.Context(), slog.LevelError, "http_error",
				slog.String("method", req.Method),
				slog.String("url", redactURL(req.URL.String())),
				slog.Duration("duration", duration),
				slog.String("error", err.Error()),
			)
		} else {
			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("url", redactURL(req.URL.String())),
				slog.Int("status", resp.StatusCode),
				slog.Duration("duration", duration),
			}
			if limit := resp.Header.Get(headerRateLimit); limit != "" {
				attrs = append(attrs, slog.String("rate_limit", limit))
			}
			t.Logger.LogAttrs(req.Context(), statusLevel(resp.StatusCode, nil), "http_response", attrs...)
		}
	}

	return resp, err
}

// NewLoggingClient creates a client whose HTTP transport logs every round trip.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	client, err := tado.NewLoggingClient(logger)
func NewLoggingClient(logger *slog.Logger, opts ...Option) (*Client, error) {
	transport := &LoggingTransport{
		Base: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		},
		Logger: logger,
	}

	httpClient := &http.Client{
		Timeout:   DefaultTimeout,
		Transport: transport,
	}

	allOpts := append([]Option{WithHTTPClient(httpClient), WithLogger(logger)}, opts...)
	return NewClient(allOpts...)
}

// logRequest logs an outgoing API request.
func (c *Client) logRequest(ctx context.Context, requestID, method, uri string) {
	if c.logger == nil {
		return
	}
	c.logger.LogAttrs(ctx, slog.LevelDebug, "api_request",
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("path", redactURL(uri)),
	)
}

// logResponse logs the outcome of an API request. A zero status means no response was received.
func (c *Client) logResponse(ctx context.Context, requestID, method, uri string, statusCode int, duration time.Duration, err error) {
	if c.logger == nil {
		return
	}

	attrs := []slog.Attr{
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("path", redactURL(uri)),
		slog.Int("status", statusCode),
		slog.Duration("duration", duration),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	c.logger.LogAttrs(ctx, statusLevel(statusCode, err), "api_response", attrs...)
}

func statusLevel(statusCode int, err error) slog.Level {
	switch {
	case err != nil || statusCode >= 500:
		return slog.LevelError
	case statusCode >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelDebug
	}
}

// redactURL strips the query string and credentials from a URL.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}
