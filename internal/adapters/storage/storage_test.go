package storage

import (
	"context"
	"testing"

	"daycare-log/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	repos, closeFn, err := Open(context.Background(), config.StorageConfig{Driver: config.StorageMemory}, nil)
	require.NoError(t, err)
	defer closeFn()

	assert.NotNil(t, repos.Users)
	assert.NotNil(t, repos.Classrooms)
	assert.NotNil(t, repos.Children)
	assert.NotNil(t, repos.Events)
}

func TestOpen_SQLiteInMemory(t *testing.T) {
	repos, closeFn, err := Open(context.Background(), config.StorageConfig{Driver: config.StorageSQLite, SQLitePath: ":memory:"}, nil)
	require.NoError(t, err)
	defer closeFn()

	list, err := repos.Classrooms.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), config.StorageConfig{Driver: "mongo"}, nil)
	assert.Error(t, err)
}
