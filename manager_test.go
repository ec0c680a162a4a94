package snipstash

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/snipstash/search"
	"github.com/poiesic/snipstash/storage"
	"github.com/poiesic/snipstash/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	backend, err := badger.NewMemoryBackend()
	require.NoError(t, err)

	manager, err := NewManager("", WithBackend(backend))
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })
	return manager
}

func TestNewManager_FileBackend(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "snipstash")

	manager, err := NewManager(dataDir)
	require.NoError(t, err)
	defer manager.Close()

	ctx := context.Background()
	id, err := manager.Store().Add(ctx, "Hello", "print('hi')", "python", nil, "")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	// The snippet document lands under the data directory.
	_, err = os.Stat(filepath.Join(dataDir, storage.SnippetsDocument))
	assert.NoError(t, err)
}

func TestManager_AddAndSearch(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	id, err := manager.Store().Add(ctx, "Fibonacci Sequence",
		"def fib(n): ...", "python", []string{"math"}, "")
	require.NoError(t, err)

	results, err := manager.Searcher().Search(ctx, search.Query{Text: "fibonacci"})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, id, results[0].Snippet.Id)
}

func TestManager_SearchSeesWritesImmediately(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	results, err := manager.Searcher().Search(ctx, search.Query{})
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = manager.Store().Add(ctx, "Fresh", "code", "go", nil, "")
	require.NoError(t, err)

	results, err = manager.Searcher().Search(ctx, search.Query{})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestManager_Close(t *testing.T) {
	backend, err := badger.NewMemoryBackend()
	require.NoError(t, err)

	manager, err := NewManager("", WithBackend(backend))
	require.NoError(t, err)

	require.NoError(t, manager.Close())
	assert.True(t, backend.IsClosed())
}
