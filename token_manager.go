package tado

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// TokenListener is called after the current token changed, either through
// Authenticate, a completed device authorization or an automatic refresh.
type TokenListener func(ctx context.Context, token *Token)

// refreshFunc exchanges a refresh token for a new token.
type refreshFunc func(ctx context.Context, refreshToken string) (*Token, error)

// tokenManager owns the current token of a Client.
// The token is swapped as a whole, so readers never observe a partial update.
type tokenManager struct {
	current  atomic.Pointer[Token]
	flight   singleflight.Group
	refresh  refreshFunc
	onChange TokenListener
	now      func() time.Time
}

func newTokenManager(refresh refreshFunc, onChange TokenListener) *tokenManager {
	return &tokenManager{
		refresh:  refresh,
		onChange: onChange,
		now:      time.Now,
	}
}

// Get returns a copy of the current token, or nil.
func (m *tokenManager) Get() *Token {
	tok := m.current.Load()
	if tok == nil {
		return nil
	}
	cp := *tok
	return &cp
}

// Set installs token as current and notifies the change listener.
func (m *tokenManager) Set(ctx context.Context, token *Token) *Token {
	tok := m.install(token)
	if tok != nil && m.onChange != nil {
		m.onChange(ctx, tok)
	}
	return tok
}

// install stores token without notifying anyone.
func (m *tokenManager) install(token *Token) *Token {
	if token == nil {
		m.current.Store(nil)
		return nil
	}
	tok := token.withExpiry(m.now())
	m.current.Store(tok)
	return tok
}

// Clear drops the current token.
func (m *tokenManager) Clear() {
	m.current.Store(nil)
}

// IsValid reports whether a token is present and either unexpired or refreshable.
func (m *tokenManager) IsValid() bool {
	tok := m.current.Load()
	if tok == nil {
		return false
	}
	return !tok.IsExpired(m.now()) || tok.CanRefresh()
}

// EnsureValid returns an unexpired token, refreshing the current one if needed.
// Concurrent callers share a single refresh request.
func (m *tokenManager) EnsureValid(ctx context.Context) (*Token, error) {
	tok := m.current.Load()
	if tok == nil {
		return nil, ErrNotAuthenticated
	}
	if !tok.IsExpired(m.now()) {
		return tok, nil
	}
	if !tok.CanRefresh() {
		return nil, &AuthenticationExpiredError{Reason: "the refresh token is empty"}
	}

	// The flight outlives any single caller; each caller only waits on its own context.
	ch := m.flight.DoChan("refresh", func() (any, error) {
		return m.refreshCurrent(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Token), nil
	}
}

// refreshCurrent runs inside the single flight.
func (m *tokenManager) refreshCurrent(ctx context.Context) (*Token, error) {
	stale := m.current.Load()
	if stale == nil {
		return nil, ErrNotAuthenticated
	}
	// Another flight may have finished between the caller's check and this one.
	if !stale.IsExpired(m.now()) {
		return stale, nil
	}
	if !stale.CanRefresh() {
		return nil, &AuthenticationExpiredError{Reason: "the refresh token is empty"}
	}

	fresh, err := m.refresh(ctx, stale.RefreshToken)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &AuthenticationExpiredError{Reason: "failed to refresh the access token", Err: err}
	}
	if fresh == nil || fresh.AccessToken == "" {
		return nil, &AuthenticationExpiredError{Reason: "failed to refresh the access token"}
	}

	fresh = fresh.withExpiry(m.now())
	if !m.current.CompareAndSwap(stale, fresh) {
		// A token was installed or cleared while refreshing; it wins.
		if cur := m.current.Load(); cur != nil {
			return cur, nil
		}
		return nil, ErrNotAuthenticated
	}

	if m.onChange != nil {
		m.onChange(ctx, fresh)
	}
	return fresh, nil
}
