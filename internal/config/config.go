// Package config loads the tado CLI configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	tado "github.com/tj-smith47/tado-go"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Token store types.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config is the CLI configuration, usually ~/.config/tado/config.yaml.
type Config struct {
	API        APIConfig        `yaml:"api"`
	HomeID     int              `yaml:"home_id,omitempty"`
	Log        LogConfig        `yaml:"log"`
	TokenStore TokenStoreConfig `yaml:"token_store"`
}

// APIConfig holds the endpoints and HTTP settings of the client.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url,omitempty"`
	AuthURL   string        `yaml:"auth_url,omitempty"`
	TokenURL  string        `yaml:"token_url,omitempty"`
	ClientID  string        `yaml:"client_id,omitempty"`
	Timeout   time.Duration `yaml:"timeout,omitempty"`
	UserAgent string        `yaml:"user_agent,omitempty"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // json or text
}

// TokenStoreConfig selects where the OAuth token is persisted.
type TokenStoreConfig struct {
	Type          string `yaml:"type,omitempty"`
	Path          string `yaml:"path,omitempty"` // file or sqlite database
	RedisAddr     string `yaml:"redis_addr,omitempty"`
	RedisPassword string `yaml:"redis_password,omitempty"`
	RedisDB       int    `yaml:"redis_db,omitempty"`
	RedisKey      string `yaml:"redis_key,omitempty"`
}

// Dir returns the directory holding the config file and the default token file.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, "tado"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads path, fills in defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readFile parses path as written, without defaults or environment overrides.
func readFile(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("cannot parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = tado.DefaultBaseURL
	}
	if c.API.AuthURL == "" {
		c.API.AuthURL = tado.DefaultAuthURL
	}
	if c.API.TokenURL == "" {
		c.API.TokenURL = tado.DefaultTokenURL
	}
	if c.API.ClientID == "" {
		c.API.ClientID = tado.DefaultClientID
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = tado.DefaultTimeout
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = tado.DefaultUserAgent
	}

	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.TokenStore.Type == "" {
		c.TokenStore.Type = StoreFile
	}
}

// applyEnv overrides settings from TADO_* and REDIS_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"TADO_BASE_URL":    &c.API.BaseURL,
		"TADO_AUTH_URL":    &c.API.AuthURL,
		"TADO_TOKEN_URL":   &c.API.TokenURL,
		"TADO_CLIENT_ID":   &c.API.ClientID,
		"TADO_USER_AGENT":  &c.API.UserAgent,
		"TADO_LOG_LEVEL":   &c.Log.Level,
		"TADO_TOKEN_STORE": &c.TokenStore.Type,
		"TADO_TOKEN_PATH":  &c.TokenStore.Path,
		"REDIS_URL":        &c.TokenStore.RedisAddr,
		"REDIS_PASSWORD":   &c.TokenStore.RedisPassword,
	}
	for key, field := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*field = v
		}
	}

	if v, ok := lookup("TADO_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: TADO_TIMEOUT: %v", ErrInvalidConfig, err)
		}
		c.API.Timeout = d
	}
	if v, ok := lookup("TADO_HOME_ID"); ok && v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: TADO_HOME_ID: %v", ErrInvalidConfig, err)
		}
		c.HomeID = id
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"api.base_url":  c.API.BaseURL,
		"api.auth_url":  c.API.AuthURL,
		"api.token_url": c.API.TokenURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %s must be an absolute URL", ErrInvalidConfig, name)
		}
	}

	if c.API.ClientID == "" {
		return fmt.Errorf("%w: api.client_id is required", ErrInvalidConfig)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must not be negative", ErrInvalidConfig)
	}
	if c.HomeID < 0 {
		return fmt.Errorf("%w: home_id must not be negative", ErrInvalidConfig)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("%w: log.format must be json or text", ErrInvalidConfig)
	}

	switch c.TokenStore.Type {
	case StoreFile, StoreMemory:
	case StoreSQLite:
		if c.TokenStore.Path == "" {
			return fmt.Errorf("%w: token_store.path is required for sqlite", ErrInvalidConfig)
		}
	case StoreRedis:
		if c.TokenStore.RedisAddr == "" {
			return fmt.Errorf("%w: token_store.redis_addr is required for redis", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown token_store.type %q", ErrInvalidConfig, c.TokenStore.Type)
	}

	return nil
}

// ClientOptions converts the API settings to client options.
func (c *Config) ClientOptions() []tado.Option {
	return []tado.Option{
		tado.WithBaseURL(c.API.BaseURL),
		tado.WithAuthURL(c.API.AuthURL),
		tado.WithTokenURL(c.API.TokenURL),
		tado.WithClientID(c.API.ClientID),
		tado.WithUserAgent(c.API.UserAgent),
		tado.WithTimeout(c.API.Timeout),
	}
}

// Save writes the config to path, creating the directory if needed.
// The file may hold a Redis password, so it is only readable by the owner.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("cannot serialize config: %w", err)
	}

	content := "# tado CLI configuration\n\n" + string(data)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("cannot write config: %w", err)
	}
	return nil
}

// SaveHomeID stores homeID in the config file at path.
// The rest of the file is written back as read, so environment overrides
// and command-line flags never end up on disk.
func SaveHomeID(path string, homeID int) error {
	cfg, err := readFile(path)
	if err != nil {
		return err
	}
	cfg.HomeID = homeID
	return cfg.Save(path)
}
