// Package redisstore persists a tado token as a JSON value in Redis.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	tado "github.com/tj-smith47/tado-go"
)

// DefaultKey is the key used when Config.Key is empty.
const DefaultKey = "tado:token"

// Config holds the Redis connection settings.
type Config struct {
	// Addr is host:port or a redis:// URL.
	Addr     string
	Password string
	DB       int

	// Key is where the token is stored. Defaults to DefaultKey.
	Key string

	// TTL expires the stored token. Zero keeps it until deleted.
	TTL time.Duration
}

// Store implements tado.TokenStore on a single Redis key.
type Store struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

var _ tado.TokenStore = (*Store)(nil)

// New connects to Redis and verifies the connection with a PING.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return NewWithClient(client, cfg.Key, cfg.TTL), nil
}

// clientOptions accepts either a host:port address or a redis:// URL.
// Password and DB from cfg override the URL when set.
func clientOptions(cfg Config) (*redis.Options, error) {
	if !strings.Contains(cfg.Addr, "://") {
		return &redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}, nil
	}

	opts, err := redis.ParseURL(cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	return opts, nil
}

// NewWithClient wraps an existing client. An empty key uses DefaultKey.
func NewWithClient(client *redis.Client, key string, ttl time.Duration) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{client: client, key: key, ttl: ttl}
}

// SaveToken stores the token as JSON.
func (s *Store) SaveToken(ctx context.Context, token *tado.Token) error {
	if token == nil {
		return fmt.Errorf("token cannot be nil")
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// LoadToken returns the stored token, or tado.ErrNoStoredToken.
func (s *Store) LoadToken(ctx context.Context) (*tado.Token, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, tado.ErrNoStoredToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	var token tado.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse stored token: %w", err)
	}
	return &token, nil
}

// DeleteToken removes the key.
func (s *Store) DeleteToken(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Ping checks that Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
