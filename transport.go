package tado

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// FormRetry configures the retry loop of a form POST.
// A zero Interval disables retries. MaxAttempts of zero means no limit.
type FormRetry struct {
	Interval    time.Duration
	MaxAttempts int
}

// response is a fully read HTTP response.
type response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *response) success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// do performs a single HTTP request and reads the whole response.
// A 429 response is returned as a *ThrottledError. A canceled context is
// returned as the context error. Any other transport failure is a *RequestError.
func (c *Client) do(ctx context.Context, method, uri string, body []byte, contentType string, token *Token) (*response, error) {
	var reqBody io.Reader
	if len(body) > 0 {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, uri, reqBody)
	if err != nil {
		return nil, &RequestError{URI: uri, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Accept", contentTypeJSON)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if token != nil {
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	}

	requestID := uuid.NewString()
	start := time.Now()
	c.logRequest(ctx, requestID, method, uri)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logResponse(ctx, requestID, method, uri, 0, time.Since(start), err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &RequestError{URI: uri, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logResponse(ctx, requestID, method, uri, resp.StatusCode, time.Since(start), err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &RequestError{URI: uri, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	c.logResponse(ctx, requestID, method, uri, resp.StatusCode, time.Since(start), nil)

	if resp.StatusCode == http.StatusTooManyRequests {
		info := parseRateLimit(resp.Header)
		if info != nil && c.rateLimitCallback != nil {
			c.rateLimitCallback(*info)
		}
		return nil, &ThrottledError{URI: uri, RateLimit: info}
	}

	return &response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// anySuccess as an expected status accepts every 2xx response.
// Other statuses yield false without an error, as a mismatch does.
const anySuccess = -1

// check applies the expected status rules to a response.
// It reports whether the body should be used. A zero expected status accepts any 2xx
// and turns every other status into a *RequestError.
func (r *response) check(uri string, expectedStatus int) (bool, error) {
	if expectedStatus == anySuccess {
		return r.success(), nil
	}
	if expectedStatus != 0 {
		return r.StatusCode == expectedStatus, nil
	}
	if !r.success() {
		return false, &RequestError{URI: uri, StatusCode: r.StatusCode, Err: fmt.Errorf("unexpected response: %s", truncatePreview(r.Body))}
	}
	return true, nil
}

// decodeResponse parses a JSON body. An empty body yields nil.
func decodeResponse[T any](uri string, r *response) (*T, error) {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return nil, &RequestError{
			URI:        uri,
			StatusCode: r.StatusCode,
			Err:        fmt.Errorf("failed to parse response: %w (body: %s)", err, truncatePreview(r.Body)),
		}
	}
	return &v, nil
}

// encodeBody marshals a JSON request body. GET requests and nil bodies send nothing.
func encodeBody(method string, body any) ([]byte, error) {
	if body == nil || method == http.MethodGet {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return data, nil
}

// getJSON performs a GET and decodes the body as T.
// A status other than expectedStatus yields (nil, nil).
func getJSON[T any](ctx context.Context, c *Client, uri string, expectedStatus int, token *Token) (*T, error) {
	return sendJSON[T](ctx, c, nil, http.MethodGet, uri, expectedStatus, token)
}

// sendJSON sends body as JSON and decodes the response as T.
// A status other than expectedStatus yields (nil, nil).
func sendJSON[T any](ctx context.Context, c *Client, body any, method, uri string, expectedStatus int, token *Token) (*T, error) {
	data, err := encodeBody(method, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, method, uri, data, contentTypeJSON, token)
	if err != nil {
		return nil, err
	}

	ok, err := resp.check(uri, expectedStatus)
	if !ok {
		return nil, err
	}
	return decodeResponse[T](uri, resp)
}

// send sends body as JSON and reports whether the response matched expectedStatus.
func (c *Client) send(ctx context.Context, body any, method, uri string, expectedStatus int, token *Token) (bool, error) {
	data, err := encodeBody(method, body)
	if err != nil {
		return false, err
	}

	resp, err := c.do(ctx, method, uri, data, contentTypeJSON, token)
	if err != nil {
		return false, err
	}

	return resp.check(uri, expectedStatus)
}

// postForm posts a form-encoded body and decodes a successful response as T.
// Unsuccessful responses are retried according to retry. Throttling is never retried.
func postForm[T any](ctx context.Context, c *Client, uri string, form url.Values, token *Token, retry *FormRetry) (*T, error) {
	body := []byte(form.Encode())

	for attempt := 1; ; attempt++ {
		resp, err := c.do(ctx, http.MethodPost, uri, body, contentTypeForm, token)
		if err != nil {
			return nil, err
		}
		if resp.success() {
			return decodeResponse[T](uri, resp)
		}

		if retry == nil || retry.Interval <= 0 || (retry.MaxAttempts > 0 && attempt >= retry.MaxAttempts) {
			return nil, &RequestError{URI: uri, StatusCode: resp.StatusCode, Err: formError(resp.Body)}
		}

		if c.logger != nil {
			c.logger.LogAttrs(ctx, slog.LevelDebug, "form_retry",
				slog.String("url", uri),
				slog.Int("status", resp.StatusCode),
				slog.Int("attempt", attempt),
				slog.Duration("wait", retry.Interval),
			)
		}

		if err := c.sleep(ctx, retry.Interval); err != nil {
			return nil, err
		}
	}
}

// formError extracts the OAuth error from an unsuccessful token response.
func formError(body []byte) error {
	var oe oauthError
	if err := json.Unmarshal(body, &oe); err == nil && oe.Code != "" {
		return &oe
	}
	return fmt.Errorf("unexpected response: %s", truncatePreview(body))
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
