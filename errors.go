package tado

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the tado client.
// Typed errors below match them through errors.Is.
var (
	// Authentication errors
	ErrNotAuthenticated      = errors.New("tado: session is not authenticated")
	ErrAuthenticationExpired = errors.New("tado: authentication expired, re-authentication required")

	// Request errors
	ErrRequestFailed = errors.New("tado: request failed")
	ErrThrottled     = errors.New("tado: request throttled")

	// Argument validation errors
	ErrArgumentRange = errors.New("tado: argument out of range")
)

// AuthenticationExpiredError is returned when the access token has expired and
// could not be refreshed. The caller has to run the device authorization flow again.
type AuthenticationExpiredError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *AuthenticationExpiredError) Error() string {
	msg := "tado: authentication expired"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is allows errors.Is() to match ErrAuthenticationExpired.
func (e *AuthenticationExpiredError) Is(target error) bool {
	return target == ErrAuthenticationExpired
}

// Unwrap returns the refresh failure, if any.
func (e *AuthenticationExpiredError) Unwrap() error {
	return e.Err
}

// RequestError represents a transport failure or an unsuccessful response.
// StatusCode is zero when no response was received.
type RequestError struct {
	URI        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	msg := fmt.Sprintf("tado: request to %s failed", e.URI)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" with status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is allows errors.Is() to match ErrRequestFailed.
func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

// Unwrap returns the underlying cause.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// ArgumentError is returned before any network call when an argument is
// outside its allowed set or a required value is missing.
type ArgumentError struct {
	Name   string
	Value  any
	Reason string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("tado: invalid argument %s (%v): %s", e.Name, e.Value, e.Reason)
	}
	return fmt.Sprintf("tado: invalid argument %s: %s", e.Name, e.Reason)
}

// Is allows errors.Is() to match ErrArgumentRange.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrArgumentRange
}

// IsNotAuthenticated returns true if the call was made before any token was installed.
func IsNotAuthenticated(err error) bool {
	return errors.Is(err, ErrNotAuthenticated)
}

// IsAuthenticationExpired returns true if the token expired and could not be refreshed.
func IsAuthenticationExpired(err error) bool {
	return errors.Is(err, ErrAuthenticationExpired)
}

// IsRequestFailed returns true if the error is a transport failure or unsuccessful response.
func IsRequestFailed(err error) bool {
	return errors.Is(err, ErrRequestFailed)
}

// IsThrottled returns true if the API answered with 429 Too Many Requests.
func IsThrottled(err error) bool {
	return errors.Is(err, ErrThrottled)
}

// IsArgumentRange returns true if an argument was rejected before sending.
func IsArgumentRange(err error) bool {
	return errors.Is(err, ErrArgumentRange)
}

// IsTimeout returns true if the error indicates a timeout.
func IsTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
