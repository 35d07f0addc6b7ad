package tado

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the tado REST API base URL.
	DefaultBaseURL = "https://my.tado.com/api/v2/"

	// DefaultAuthURL is the device authorization endpoint.
	DefaultAuthURL = "https://login.tado.com/oauth2/device_authorize"

	// DefaultTokenURL is the token endpoint.
	DefaultTokenURL = "https://login.tado.com/oauth2/token"

	// DefaultClientID is the public client id used by tado's own apps.
	DefaultClientID = "1bb50063-6b0c-4d11-bd99-387f4a91cc46"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "tado-go"
)

// Client is a tado API client. It is safe for concurrent use.
//
// A Client starts unauthenticated. Obtain a token through the device
// authorization flow, Authenticate with a saved token, or RestoreToken
// from a TokenStore before calling any home or zone method.
type Client struct {
	baseURL           string
	authURL           string
	tokenURL          string
	clientID          string
	userAgent         string
	httpClient        *http.Client
	logger            *slog.Logger
	cacheConfig       *CacheConfig
	rateLimitCallback RateLimitCallback
	store             TokenStore
	listeners         []TokenListener
	tokens            *tokenManager

	// sleep waits between device code polls.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithAuthURL sets the device authorization endpoint.
func WithAuthURL(url string) Option {
	return func(c *Client) {
		c.authURL = url
	}
}

// WithTokenURL sets the token endpoint.
func WithTokenURL(url string) Option {
	return func(c *Client) {
		c.tokenURL = url
	}
}

// WithClientID sets the OAuth client id.
func WithClientID(clientID string) Option {
	return func(c *Client) {
		c.clientID = clientID
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP request timeout.
// This option can be applied in any order relative to other options.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// WithRateLimitCallback sets a callback that is invoked when a request is throttled.
func WithRateLimitCallback(callback RateLimitCallback) Option {
	return func(c *Client) {
		c.rateLimitCallback = callback
	}
}

// WithTokenStore persists every new token through store.
// Use Client.RestoreToken to load a previously saved token.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithTokenListener registers a callback invoked whenever the current token changes.
func WithTokenListener(listener TokenListener) Option {
	return func(c *Client) {
		if listener != nil {
			c.listeners = append(c.listeners, listener)
		}
	}
}

// NewClient creates a new tado API client.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:   DefaultBaseURL,
		authURL:   DefaultAuthURL,
		tokenURL:  DefaultTokenURL,
		clientID:  DefaultClientID,
		userAgent: DefaultUserAgent,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				DisableKeepAlives:   false,
			},
		},
		sleep: sleepContext,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	for name, raw := range map[string]string{"base URL": c.baseURL, "auth URL": c.authURL, "token URL": c.tokenURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("tado: invalid %s %q", name, raw)
		}
	}
	if !strings.HasSuffix(c.baseURL, "/") {
		c.baseURL += "/"
	}
	if c.clientID == "" {
		return nil, fmt.Errorf("tado: client id is required")
	}

	c.tokens = newTokenManager(c.exchangeRefreshToken, c.tokenChanged)
	return c, nil
}

// Token returns a copy of the current token, or nil when unauthenticated.
func (c *Client) Token() *Token {
	return c.tokens.Get()
}

// IsAuthenticated reports whether a token is installed that is either
// unexpired or can be refreshed.
func (c *Client) IsAuthenticated() bool {
	return c.tokens.IsValid()
}

// EnsureValidToken returns a copy of an unexpired access token, refreshing it if needed.
// Every API method checks the token the same way before sending a request.
func (c *Client) EnsureValidToken(ctx context.Context) (*Token, error) {
	tok, err := c.tokens.EnsureValid(ctx)
	if err != nil {
		return nil, err
	}
	cp := *tok
	return &cp, nil
}

// tokenChanged notifies listeners and persists the token.
// Store failures are logged, they never fail the call that produced the token.
func (c *Client) tokenChanged(ctx context.Context, token *Token) {
	if c.logger != nil {
		c.logger.LogAttrs(ctx, slog.LevelInfo, "token_changed",
			slog.Time("expires_at", token.ExpiresAt),
			slog.Bool("refreshable", token.CanRefresh()),
		)
	}

	if c.store != nil {
		if err := c.store.SaveToken(ctx, token); err != nil && c.logger != nil {
			c.logger.LogAttrs(ctx, slog.LevelWarn, "token_store_save_failed",
				slog.String("error", err.Error()),
			)
		}
	}

	for _, listener := range c.listeners {
		cp := *token
		listener(ctx, &cp)
	}
}

// getData GETs path relative to the base URL and expects 200 OK.
func getData[T any](ctx context.Context, c *Client, path string) (*T, error) {
	token, err := c.tokens.EnsureValid(ctx)
	if err != nil {
		return nil, err
	}
	return getJSON[T](ctx, c, c.baseURL+path, http.StatusOK, token)
}

// getList GETs a JSON array. A status mismatch yields a nil slice.
func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	items, err := getData[[]T](ctx, c, path)
	if err != nil || items == nil {
		return nil, err
	}
	return *items, nil
}

// sendData sends body to path relative to the base URL.
func sendData[T any](ctx context.Context, c *Client, method, path string, body any, expectedStatus int) (*T, error) {
	token, err := c.tokens.EnsureValid(ctx)
	if err != nil {
		return nil, err
	}
	return sendJSON[T](ctx, c, body, method, c.baseURL+path, expectedStatus, token)
}

// sendCommand sends body to path and reports whether the expected status was returned.
func (c *Client) sendCommand(ctx context.Context, method, path string, body any, expectedStatus int) (bool, error) {
	token, err := c.tokens.EnsureValid(ctx)
	if err != nil {
		return false, err
	}
	return c.send(ctx, body, method, c.baseURL+path, expectedStatus, token)
}
