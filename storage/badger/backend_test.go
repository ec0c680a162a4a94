package badger

import (
	"context"
	"testing"

	"github.com/poiesic/snipstash/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := Open("", true)
	require.NoError(t, err)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_Filesystem(t *testing.T) {
	backend, err := Open(t.TempDir(), false)
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, backend.Store(ctx, storage.SnippetsDocument, []byte(`{}`)))

	data, err := backend.Load(ctx, storage.SnippetsDocument)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), data)
}

func TestLoad_MissingDocument(t *testing.T) {
	backend, err := NewMemoryBackend()
	require.NoError(t, err)
	defer backend.Close()

	data, err := backend.Load(context.Background(), storage.ConfigDocument)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestStoreLoad_RoundTrip(t *testing.T) {
	backend, err := NewMemoryBackend()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	doc := []byte(`{"greet": {"title": "Greeting"}}`)

	require.NoError(t, backend.Store(ctx, storage.SnippetsDocument, doc))

	data, err := backend.Load(ctx, storage.SnippetsDocument)
	require.NoError(t, err)
	assert.Equal(t, doc, data)
}

func TestStore_ReplacesDocument(t *testing.T) {
	backend, err := NewMemoryBackend()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	require.NoError(t, backend.Store(ctx, storage.ConfigDocument, []byte("first")))
	require.NoError(t, backend.Store(ctx, storage.ConfigDocument, []byte("second")))

	data, err := backend.Load(ctx, storage.ConfigDocument)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestBackendClose(t *testing.T) {
	backend, err := NewMemoryBackend()
	require.NoError(t, err)
	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())

	ctx := context.Background()

	_, err = backend.Load(ctx, storage.SnippetsDocument)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = backend.Store(ctx, storage.SnippetsDocument, []byte("{}"))
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
