package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DIRECTORY_DRIVER", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("AUDIT_STREAM", "")
	t.Setenv("APP_HOST", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Directory.Driver)
	assert.Equal(t, "directory:audit", cfg.Audit.Stream)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
}

func TestLoad_DriverIsCaseInsensitive(t *testing.T) {
	t.Setenv("DIRECTORY_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/dir.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Directory.Driver)
	assert.Equal(t, "/tmp/dir.db", cfg.Directory.SQLitePath)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DIRECTORY_DRIVER", "mongo")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("DIRECTORY_DRIVER", "memory")
	t.Setenv("REDIS_DB", "one")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("DIRECTORY_DRIVER", "memory")
	t.Setenv("REDIS_DB", "")
	t.Setenv("AUTH_BCRYPT_COST", "high")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "maybe")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Postgres.RunMigrations)
	assert.Zero(t, cfg.App.RequestTimeout())
}
