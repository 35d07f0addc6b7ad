package tado

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	grantTypeDeviceCode   = "urn:ietf:params:oauth:grant-type:device_code"
	grantTypeRefreshToken = "refresh_token"
	scopeOfflineAccess    = "offline_access"

	// defaultPollInterval is used when the authorization server sends no interval.
	defaultPollInterval = 5 * time.Second
	// defaultPollAttempts is used when the authorization server sends no expiry.
	defaultPollAttempts = 60
)

// Token is an OAuth2 token issued by the tado identity server.
// A Token is never modified after it has been installed on a Client.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresIn    int       `json:"expires_in,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	Scope        string    `json:"scope,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	UserID       string    `json:"userId,omitempty"`
}

// IsExpired reports whether the access token is expired at now.
// A token without a known expiry counts as expired.
func (t *Token) IsExpired(now time.Time) bool {
	if t == nil || t.AccessToken == "" || t.ExpiresAt.IsZero() {
		return true
	}
	return !now.Before(t.ExpiresAt)
}

// IsValid checks if the access token can be used right now.
func (t *Token) IsValid() bool {
	return !t.IsExpired(time.Now())
}

// TimeLeft returns how long until the access token expires, or zero if it already has.
func (t *Token) TimeLeft() time.Duration {
	if t == nil || t.ExpiresAt.IsZero() {
		return 0
	}
	if d := time.Until(t.ExpiresAt); d > 0 {
		return d
	}
	return 0
}

// CanRefresh reports whether the token carries a refresh token.
func (t *Token) CanRefresh() bool {
	return t != nil && strings.TrimSpace(t.RefreshToken) != ""
}

// withExpiry returns a copy of t with ExpiresAt resolved.
// Order: an explicit ExpiresAt, then ExpiresIn counted from now, then the JWT exp claim.
// If none is available ExpiresAt stays zero and the token is treated as expired.
func (t *Token) withExpiry(now time.Time) *Token {
	tok := *t
	if !tok.ExpiresAt.IsZero() {
		return &tok
	}
	if tok.ExpiresIn > 0 {
		tok.ExpiresAt = now.Add(time.Duration(tok.ExpiresIn) * time.Second)
		return &tok
	}
	if exp, ok := jwtExpiry(tok.AccessToken); ok {
		tok.ExpiresAt = exp
	}
	return &tok
}

// jwtExpiry reads the exp claim of an access token without verifying its signature.
// The token is only inspected locally; the API remains the authority on validity.
func jwtExpiry(accessToken string) (time.Time, bool) {
	if accessToken == "" {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// DeviceAuthorization is the response of the device authorization endpoint.
// Show VerificationURIComplete (or VerificationURI and UserCode) to the user,
// then pass it to WaitForDeviceCodeAuthenticationToComplete.
type DeviceAuthorization struct {
	DeviceCode              string `json:"device_code"`
	UserCode                string `json:"user_code"`
	VerificationURI         string `json:"verification_uri"`
	VerificationURIComplete string `json:"verification_uri_complete,omitempty"`
	ExpiresIn               int    `json:"expires_in,omitempty"`
	Interval                int    `json:"interval,omitempty"`
}

// PollSchedule returns the wait between polls and the maximum number of polls.
func (d *DeviceAuthorization) PollSchedule() (time.Duration, int) {
	interval := defaultPollInterval
	if d.Interval > 0 {
		interval = time.Duration(d.Interval) * time.Second
	}

	attempts := defaultPollAttempts
	if d.ExpiresIn > 0 {
		attempts = d.ExpiresIn / int(interval/time.Second)
		if attempts < 1 {
			attempts = 1
		}
	}
	return interval, attempts
}

// oauthError is the error body of the identity server.
type oauthError struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *oauthError) Error() string {
	if e.Description != "" {
		return "oauth error: " + e.Code + " - " + e.Description
	}
	return "oauth error: " + e.Code
}
