package tado

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoStoredToken is returned by a TokenStore when nothing has been saved yet.
var ErrNoStoredToken = errors.New("tado: no stored token")

// TokenStore persists the client's token across process restarts.
// The client saves through the store on every token change.
// Implementations must be safe for concurrent use.
type TokenStore interface {
	SaveToken(ctx context.Context, token *Token) error
	LoadToken(ctx context.Context) (*Token, error)
	DeleteToken(ctx context.Context) error
}

// FileTokenStore stores the token in a JSON file readable only by the owner.
type FileTokenStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileTokenStore creates a FileTokenStore writing to path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Path returns the file the token is stored in.
func (f *FileTokenStore) Path() string {
	return f.path
}

// SaveToken writes the token to the file.
func (f *FileTokenStore) SaveToken(ctx context.Context, token *Token) error {
	if token == nil {
		return fmt.Errorf("token cannot be nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create token directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	// Write to a temporary file first, then rename so readers never see a partial file
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to save token file: %w", err)
	}

	return nil
}

// LoadToken reads the token from the file.
// It returns ErrNoStoredToken if the file does not exist.
func (f *FileTokenStore) LoadToken(ctx context.Context) (*Token, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoStoredToken
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return &token, nil
}

// DeleteToken removes the token file. A missing file is not an error.
func (f *FileTokenStore) DeleteToken(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}

// MemoryTokenStore keeps the token in memory (useful for testing).
type MemoryTokenStore struct {
	token *Token
	mu    sync.RWMutex
}

// NewMemoryTokenStore creates a new in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// SaveToken stores a copy of token.
func (m *MemoryTokenStore) SaveToken(ctx context.Context, token *Token) error {
	if token == nil {
		return fmt.Errorf("token cannot be nil")
	}
	cp := *token

	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = &cp
	return nil
}

// LoadToken returns a copy of the stored token.
func (m *MemoryTokenStore) LoadToken(ctx context.Context) (*Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.token == nil {
		return nil, ErrNoStoredToken
	}
	cp := *m.token
	return &cp, nil
}

// DeleteToken forgets the stored token.
func (m *MemoryTokenStore) DeleteToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = nil
	return nil
}
