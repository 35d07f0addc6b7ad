package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tado "github.com/tj-smith47/tado-go"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, tado.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, tado.DefaultClientID, cfg.API.ClientID)
	assert.Equal(t, tado.DefaultTimeout, cfg.API.Timeout)
	assert.Equal(t, StoreFile, cfg.TokenStore.Type)
	assert.Equal(t, "text", cfg.Log.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  timeout: 10s
  user_agent: my-agent
home_id: 42
log:
  level: debug
  format: json
token_store:
  type: sqlite
  path: /tmp/tado.db
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "my-agent", cfg.API.UserAgent)
	assert.Equal(t, tado.DefaultTokenURL, cfg.API.TokenURL)
	assert.Equal(t, 42, cfg.HomeID)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, StoreSQLite, cfg.TokenStore.Type)
	require.NoError(t, cfg.Validate())
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("TADO_HOME_ID", "7")
	t.Setenv("TADO_TIMEOUT", "5s")
	t.Setenv("TADO_CLIENT_ID", "custom")
	t.Setenv("TADO_TOKEN_STORE", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REDIS_PASSWORD", "pw")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.HomeID)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "custom", cfg.API.ClientID)
	assert.Equal(t, StoreRedis, cfg.TokenStore.Type)
	assert.Equal(t, "redis://localhost:6379/0", cfg.TokenStore.RedisAddr)
	assert.Equal(t, "pw", cfg.TokenStore.RedisPassword)
	require.NoError(t, cfg.Validate())
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("TADO_HOME_ID", "abc")
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	t.Setenv("TADO_HOME_ID", "")
	t.Setenv("TADO_TIMEOUT", "soon")
	_, err = Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"relative base url", func(c *Config) { c.API.BaseURL = "/api" }},
		{"missing client id", func(c *Config) { c.API.ClientID = "" }},
		{"negative timeout", func(c *Config) { c.API.Timeout = -time.Second }},
		{"negative home", func(c *Config) { c.HomeID = -1 }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"unknown store", func(c *Config) { c.TokenStore.Type = "etcd" }},
		{"sqlite without path", func(c *Config) { c.TokenStore.Type = StoreSQLite }},
		{"redis without address", func(c *Config) { c.TokenStore.Type = StoreRedis }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.HomeID = 123
	cfg.API.Timeout = 45 * time.Second
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 123, loaded.HomeID)
	assert.Equal(t, 45*time.Second, loaded.API.Timeout)
}

func TestSaveHomeID(t *testing.T) {
	t.Run("keeps the file and skips env overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
api:
  user_agent: my-agent
token_store:
  type: redis
  redis_addr: localhost:6379
`), 0600))

		t.Setenv("REDIS_PASSWORD", "from-env")
		t.Setenv("TADO_TIMEOUT", "3s")

		require.NoError(t, SaveHomeID(path, 77))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "from-env")
		assert.NotContains(t, string(data), "3s")
		assert.NotContains(t, string(data), tado.DefaultBaseURL, "defaults are not written")

		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 77, loaded.HomeID)
		assert.Equal(t, "my-agent", loaded.API.UserAgent)
		assert.Equal(t, "localhost:6379", loaded.TokenStore.RedisAddr)
		assert.Equal(t, "from-env", loaded.TokenStore.RedisPassword)
	})

	t.Run("creates a missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "new", "config.yaml")
		require.NoError(t, SaveHomeID(path, 5))

		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 5, loaded.HomeID)
		require.NoError(t, loaded.Validate())
	})
}

func TestClientOptions(t *testing.T) {
	cfg := Default()
	cfg.API.UserAgent = "cli-test"

	client, err := tado.NewClient(cfg.ClientOptions()...)
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Len(t, cfg.ClientOptions(), 6)
}
