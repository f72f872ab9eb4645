package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DAYCARE_STORAGE_DRIVER", "")
	t.Setenv("DAYCARE_AUTH_JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "daycare-log", cfg.App.Name)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.True(t, cfg.DevAuth())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DAYCARE_HTTP_PORT", "9090")
	t.Setenv("DAYCARE_STORAGE_DRIVER", "SQLite")
	t.Setenv("DAYCARE_STORAGE_SQLITE_PATH", "/tmp/x.sqlite")
	t.Setenv("DAYCARE_AUTH_JWT_SECRET", "s3cret")
	t.Setenv("DAYCARE_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/x.sqlite", cfg.Storage.SQLitePath)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.DevAuth())
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	t.Setenv("DAYCARE_STORAGE_DRIVER", "postgres")
	t.Setenv("DAYCARE_STORAGE_DSN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("DAYCARE_STORAGE_DRIVER", "mongo")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo")
}
