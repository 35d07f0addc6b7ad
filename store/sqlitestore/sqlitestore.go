// Package sqlitestore persists a tado token in a SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	tado "github.com/tj-smith47/tado-go"
)

// Store implements tado.TokenStore on a single-row table.
type Store struct {
	db *sql.DB
}

var _ tado.TokenStore = (*Store)(nil)

// New opens (or creates) the database at path and ensures the schema exists.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS tado_tokens (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			access_token TEXT NOT NULL,
			refresh_token TEXT,
			token_type TEXT,
			scope TEXT,
			user_id TEXT,
			expires_at TEXT,
			updated_at TEXT NOT NULL
		);
	`)
	return err
}

// SaveToken inserts or replaces the stored token.
func (s *Store) SaveToken(ctx context.Context, token *tado.Token) error {
	if token == nil {
		return fmt.Errorf("token cannot be nil")
	}

	var expiresAt sql.NullString
	if !token.ExpiresAt.IsZero() {
		expiresAt = sql.NullString{String: token.ExpiresAt.UTC().Format(time.RFC3339Nano), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tado_tokens (id, access_token, refresh_token, token_type, scope, user_id, expires_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_type = excluded.token_type,
			scope = excluded.scope,
			user_id = excluded.user_id,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`, token.AccessToken, token.RefreshToken, token.TokenType, token.Scope, token.UserID,
		expiresAt, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// LoadToken returns the stored token, or tado.ErrNoStoredToken.
func (s *Store) LoadToken(ctx context.Context) (*tado.Token, error) {
	var (
		token                                 tado.Token
		refresh, tokenType, scope, userID, at sql.NullString
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT access_token, refresh_token, token_type, scope, user_id, expires_at
		FROM tado_tokens WHERE id = 1
	`).Scan(&token.AccessToken, &refresh, &tokenType, &scope, &userID, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tado.ErrNoStoredToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	token.RefreshToken = refresh.String
	token.TokenType = tokenType.String
	token.Scope = scope.String
	token.UserID = userID.String
	if at.Valid && at.String != "" {
		expiresAt, err := time.Parse(time.RFC3339Nano, at.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse token expiry: %w", err)
		}
		token.ExpiresAt = expiresAt
	}

	return &token, nil
}

// DeleteToken removes the stored token.
func (s *Store) DeleteToken(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM tado_tokens WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
