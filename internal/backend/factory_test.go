package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendTypeIsValid(t *testing.T) {
	assert.True(t, JSONBackend.IsValid())
	assert.True(t, SQLiteBackend.IsValid())
	assert.False(t, BackendType("postgres").IsValid())
	assert.False(t, BackendType("").IsValid())
}

func TestCreateJSONStore(t *testing.T) {
	f := NewFactory(nil)
	result, err := f.CreateStore(context.Background(), Config{
		Type:     JSONBackend,
		DataRoot: t.TempDir(),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Store)
	assert.Nil(t, result.Cleanup)

	entries, err := result.Store.LoadExpenses(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateSQLiteStore(t *testing.T) {
	f := NewFactory(nil)
	result, err := f.CreateStore(context.Background(), Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "outgo.db"),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Store)
	require.NotNil(t, result.Cleanup)
	defer result.Cleanup()

	entries, err := result.Store.LoadExpenses(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateStoreInvalidType(t *testing.T) {
	f := NewFactory(nil)
	_, err := f.CreateStore(context.Background(), Config{Type: "postgres"})
	assert.Error(t, err)
}
