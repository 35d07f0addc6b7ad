package tado

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
)

// GetDeviceCodeAuthentication starts the device authorization flow.
// Show the returned VerificationURIComplete to the user, then call
// WaitForDeviceCodeAuthenticationToComplete.
//
// A failed request is logged and reported as (nil, nil). Throttling and
// context cancellation are returned as errors.
func (c *Client) GetDeviceCodeAuthentication(ctx context.Context) (*DeviceAuthorization, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("scope", scopeOfflineAccess)

	auth, err := postForm[DeviceAuthorization](ctx, c, c.authURL, form, nil, nil)
	if err != nil {
		return nil, c.swallowRequestError(ctx, "device_authorization_failed", err)
	}
	return auth, nil
}

// WaitForDeviceCodeAuthenticationToComplete polls the token endpoint until the
// user has approved the device code, then installs the token on the client.
//
// Polling uses the interval sent by the server (5s when absent) and stops
// after ExpiresIn/Interval attempts (60 when absent). If the user never
// approves, or the request fails, the result is (nil, nil).
func (c *Client) WaitForDeviceCodeAuthenticationToComplete(ctx context.Context, auth *DeviceAuthorization) (*Token, error) {
	if auth == nil || strings.TrimSpace(auth.DeviceCode) == "" {
		return nil, &ArgumentError{Name: "deviceCode", Reason: "a device code is required"}
	}

	interval, attempts := auth.PollSchedule()

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("device_code", auth.DeviceCode)
	form.Set("grant_type", grantTypeDeviceCode)

	token, err := postForm[Token](ctx, c, c.tokenURL, form, nil, &FormRetry{Interval: interval, MaxAttempts: attempts})
	if err != nil {
		return nil, c.swallowRequestError(ctx, "device_code_wait_failed", err)
	}
	if token == nil || token.AccessToken == "" {
		return nil, nil
	}

	installed := c.tokens.Set(ctx, token)
	cp := *installed
	return &cp, nil
}

// GetAccessTokenWithRefreshToken exchanges a refresh token for a new token.
// The client's current token is left unchanged; pass the result to Authenticate
// to install it. A failed request is logged and reported as (nil, nil).
func (c *Client) GetAccessTokenWithRefreshToken(ctx context.Context, refreshToken string) (*Token, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, &ArgumentError{Name: "refreshToken", Reason: "a refresh token is required"}
	}

	token, err := c.exchangeRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, c.swallowRequestError(ctx, "refresh_token_exchange_failed", err)
	}
	return token, nil
}

// exchangeRefreshToken performs the refresh_token grant and stamps the expiry.
func (c *Client) exchangeRefreshToken(ctx context.Context, refreshToken string) (*Token, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("grant_type", grantTypeRefreshToken)
	form.Set("refresh_token", refreshToken)

	token, err := postForm[Token](ctx, c, c.tokenURL, form, nil, nil)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, nil
	}
	return token.withExpiry(c.tokens.now()), nil
}

// Authenticate installs a token obtained elsewhere, for example one loaded
// from disk, and notifies token listeners. It reports IsAuthenticated.
func (c *Client) Authenticate(token *Token) bool {
	if token == nil || token.AccessToken == "" {
		return false
	}
	c.tokens.Set(context.Background(), token)
	return c.IsAuthenticated()
}

// RestoreToken loads the token saved in the configured TokenStore.
// It reports false without error when nothing is stored.
func (c *Client) RestoreToken(ctx context.Context) (bool, error) {
	if c.store == nil {
		return false, nil
	}

	token, err := c.store.LoadToken(ctx)
	if err != nil {
		if errors.Is(err, ErrNoStoredToken) {
			return false, nil
		}
		return false, err
	}
	if token == nil || token.AccessToken == "" {
		return false, nil
	}

	c.tokens.install(token)
	return c.IsAuthenticated(), nil
}

// Logout drops the current token and removes it from the configured TokenStore.
func (c *Client) Logout(ctx context.Context) error {
	c.tokens.Clear()
	if c.store == nil {
		return nil
	}
	return c.store.DeleteToken(ctx)
}

// swallowRequestError logs request failures and hides them from the caller.
// Other errors are returned unchanged.
func (c *Client) swallowRequestError(ctx context.Context, msg string, err error) error {
	if !errors.Is(err, ErrRequestFailed) {
		return err
	}
	if c.logger != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, msg, slog.String("error", err.Error()))
	}
	return nil
}
