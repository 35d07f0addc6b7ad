package tado

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	headerRateLimitPolicy = "RateLimit-Policy"
	headerRateLimit       = "RateLimit"

	// maxThrottleWait caps how long WaitForThrottle blocks.
	maxThrottleWait = 5 * time.Minute
)

// RateLimit holds the rate limit metadata sent along with a 429 response.
// Fields are nil when the corresponding header parameter was absent or malformed.
//
// The API sends two headers:
//
//	RateLimit-Policy: "perday";q=20000;w=86400
//	RateLimit: "perday";r=0;t=7082
type RateLimit struct {
	PolicyName   string
	Quota        *int // q: requests allowed per window
	Window       *int // w: window length in seconds
	Remaining    *int // r: requests left in the current window
	ResetSeconds *int // t: seconds until the window resets
}

// RateLimitCallback is called with the parsed metadata whenever a request is throttled.
type RateLimitCallback func(RateLimit)

// ThrottledError is returned when the API answers with 429 Too Many Requests.
type ThrottledError struct {
	URI       string
	RateLimit *RateLimit
}

// Error implements the error interface.
func (e *ThrottledError) Error() string {
	if wait := e.RetryAfter(); wait > 0 {
		return fmt.Sprintf("tado: request to %s throttled (retry after %s)", e.URI, wait)
	}
	return fmt.Sprintf("tado: request to %s throttled", e.URI)
}

// Is allows errors.Is() to match ErrThrottled.
func (e *ThrottledError) Is(target error) bool {
	return target == ErrThrottled
}

// RetryAfter returns how long the server asked to wait, or zero when unknown.
func (e *ThrottledError) RetryAfter() time.Duration {
	if e.RateLimit == nil || e.RateLimit.ResetSeconds == nil || *e.RateLimit.ResetSeconds <= 0 {
		return 0
	}
	return time.Duration(*e.RateLimit.ResetSeconds) * time.Second
}

// parseRateLimit extracts rate limit metadata from response headers.
// Returns nil if neither header is present. Malformed parameters are skipped.
func parseRateLimit(header http.Header) *RateLimit {
	policy := header.Get(headerRateLimitPolicy)
	limit := header.Get(headerRateLimit)

	if policy == "" && limit == "" {
		return nil
	}

	info := &RateLimit{}

	if policy != "" {
		name, params := parseRateLimitHeader(policy)
		info.PolicyName = name
		info.Quota = params["q"]
		info.Window = params["w"]
	}

	if limit != "" {
		name, params := parseRateLimitHeader(limit)
		if info.PolicyName == "" {
			info.PolicyName = name
		}
		info.Remaining = params["r"]
		info.ResetSeconds = params["t"]
	}

	return info
}

// parseRateLimitHeader splits `"name";k=v;k=v` into the unquoted name and its integer parameters.
func parseRateLimitHeader(value string) (string, map[string]*int) {
	parts := strings.Split(value, ";")
	name := strings.Trim(strings.TrimSpace(parts[0]), `"`)

	params := make(map[string]*int, len(parts)-1)
	for _, part := range parts[1:] {
		key, raw, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		params[strings.TrimSpace(key)] = &n
	}

	return name, params
}

// WaitForThrottle blocks for the reset period carried by a ThrottledError.
// It returns immediately if err is not a ThrottledError or carries no reset time.
// The wait is capped at five minutes and aborts when ctx is canceled.
//
// Example:
//
//	summary, err := client.SetHeatingTemperatureCelsius(ctx, homeID, zoneID, 21)
//	if tado.IsThrottled(err) {
//	    if err := tado.WaitForThrottle(ctx, err); err != nil {
//	        return err // Context canceled
//	    }
//	    // Retry the command
//	}
func WaitForThrottle(ctx context.Context, err error) error {
	var throttled *ThrottledError
	if !errors.As(err, &throttled) {
		return nil
	}

	wait := throttled.RetryAfter()
	if wait <= 0 {
		return nil
	}
	if wait > maxThrottleWait {
		wait = maxThrottleWait
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
