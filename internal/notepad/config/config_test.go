package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknote/internal/notepad/config"
	"quicknote/pkg/logger"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.GetAddress())
	assert.Equal(t, config.DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "notes", cfg.Storage.NotesKey)
	assert.Equal(t, 95, cfg.Editor.BlockLimit)
	assert.Equal(t, 300*time.Millisecond, cfg.Editor.Debounce)
	assert.Equal(t, "Quick note", cfg.Notion.TitleMarker)
	assert.Equal(t, 5*time.Second, cfg.Shutdown.GetTimeout())
	assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("QUICKNOTE_HTTP_PORT", "9999")
	t.Setenv("QUICKNOTE_STORAGE_DRIVER", "redis")
	t.Setenv("QUICKNOTE_NOTION_PREFLIGHT", "true")
	t.Setenv("QUICKNOTE_LOGGER_MODE", "production")

	cfg, err := config.Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.HTTP.Port)
	assert.Equal(t, config.DriverRedis, cfg.Storage.Driver)
	assert.True(t, cfg.Notion.Preflight)
	assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quicknote.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: 7070
storage:
  driver: memory
editor:
  block_limit: 10
  debounce: 50ms
`), 0o600))

	cfg, err := config.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.HTTP.Port)
	assert.Equal(t, config.DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 10, cfg.Editor.BlockLimit)
	assert.Equal(t, 50*time.Millisecond, cfg.Editor.Debounce)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := config.Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), config.ErrFailedLoadConfig)
}

func TestRedisConfig_Options(t *testing.T) {
	cfg := config.RedisConfig{Host: "redis", Port: 6380, DB: 2, PoolSize: 3}

	opts := cfg.Options()

	assert.Equal(t, "redis:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 3, opts.PoolSize)
}

func TestPostgresConfig_PoolConfig(t *testing.T) {
	cfg := config.PostgresConfig{DSN: "postgres://db", MinConns: 1, MaxConns: 8, ConnectTimeout: 2 * time.Second}

	pool := cfg.PoolConfig()

	assert.Equal(t, "postgres://db", pool.DSN)
	assert.Equal(t, int32(1), pool.MinConns)
	assert.Equal(t, int32(8), pool.MaxConns)
	assert.Equal(t, 2*time.Second, pool.ConnectTimeout)
}
