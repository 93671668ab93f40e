package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BIND_ADDR", "PORT", "STORAGE_BACKEND", "DATA_DIR", "GIN_MODE", "LOG_LEVEL",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_KEY_PREFIX",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "KV_TABLE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_DIR", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, AppID, cfg.Redis.KeyPrefix)
	assert.Equal(t, "kv_entries", cfg.Postgres.Table)
}

func TestLoad_FileBackendDefaultsDataDir(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, AppID, filepath.Base(cfg.DataDir))
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already set, so unset them.
	for _, key := range []string{"PORT", "STORAGE_BACKEND", "LOG_LEVEL", "REDIS_DB"} {
		require.NoError(t, os.Unsetenv(key))
	}

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=9191\nSTORAGE_BACKEND=redis\nLOG_LEVEL=debug\nREDIS_DB=3\n"), 0o600))
	t.Cleanup(func() {
		for _, key := range []string{"PORT", "STORAGE_BACKEND", "LOG_LEVEL", "REDIS_DB"} {
			_ = os.Unsetenv(key)
		}
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "9191", cfg.Port)
	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "memory")

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want error
	}{
		{"Unknown backend", "STORAGE_BACKEND", "sqlite", ErrUnknownBackend},
		{"Port not a number", "PORT", "http", ErrInvalidPort},
		{"Port out of range", "PORT", "70000", ErrInvalidPort},
		{"Bad log level", "LOG_LEVEL", "verbose", ErrInvalidLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("STORAGE_BACKEND", "memory")
			t.Setenv(tt.key, tt.val)

			_, err := Load("")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPostgresConfig_DSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: "5433", User: "u", Password: "p", Name: "n"}
	assert.Equal(t, "postgres://u:p@db:5433/n?sslmode=disable", p.DSN())
}
