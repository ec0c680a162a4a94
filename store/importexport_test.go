package store

import (
	"context"
	"testing"

	"github.com/poiesic/snipstash/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportJSON_Mapping(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	doc := []byte(`{
		"Hello World": {"code": "print('hello')", "language": "Python", "tags": ["Demo"]},
		"List Dir":    {"code": "ls -la", "language": "bash"}
	}`)

	imported, err := s.ImportJSON(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	snippets := s.AllSnippets(ctx)
	require.Len(t, snippets, 2)

	titles := map[string]bool{}
	for _, snippet := range snippets {
		titles[snippet.Title] = true
		assert.Len(t, snippet.Id, 8)
		assert.Equal(t, 0, snippet.UsageCount)
		assert.False(t, snippet.CreatedAt.IsZero())
	}
	assert.True(t, titles["Hello World"])
	assert.True(t, titles["List Dir"])
}

func TestImportJSON_MappingKeyIsFallbackTitle(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	doc := []byte(`{"Key Title": {"title": "Inline Title", "code": "x"}}`)

	imported, err := s.ImportJSON(ctx, doc)
	require.NoError(t, err)
	require.Equal(t, 1, imported)

	assert.Equal(t, "Inline Title", s.AllSnippets(ctx)[0].Title)
}

func TestImportJSON_Sequence(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	doc := []byte(`[
		{"title": "Named", "code": "a", "language": "go"},
		{"code": "b"}
	]`)

	imported, err := s.ImportJSON(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	titles := map[string]bool{}
	for _, snippet := range s.AllSnippets(ctx) {
		titles[snippet.Title] = true
	}
	assert.True(t, titles["Named"])
	assert.True(t, titles["Untitled"])
}

func TestImportJSON_SkipsBadEntries(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	doc := []byte(`{
		"Good":    {"code": "works"},
		"No Code": {"language": "go"},
		"Wrong":   "just a string"
	}`)

	imported, err := s.ImportJSON(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	snippets := s.AllSnippets(ctx)
	require.Len(t, snippets, 1)
	assert.Equal(t, "Good", snippets[0].Title)
}

func TestImportJSON_DiscardsSourceBookkeeping(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	doc := []byte(`{"Recycled": {"id": "stale123", "code": "x", "usage_count": 99}}`)

	imported, err := s.ImportJSON(ctx, doc)
	require.NoError(t, err)
	require.Equal(t, 1, imported)

	snippet := s.AllSnippets(ctx)[0]
	assert.NotEqual(t, "stale123", snippet.Id)
	assert.Equal(t, 0, snippet.UsageCount)
}

func TestImportJSON_Unrecognized(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.ImportJSON(context.Background(), []byte(`42`))
	assert.ErrorIs(t, err, ErrUnrecognizedImport)

	_, err = s.ImportJSON(context.Background(), []byte(`not json at all`))
	assert.ErrorIs(t, err, ErrUnrecognizedImport)
}

func TestExportImport_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "Fib", "def fib(n): ...", "python", []string{"math"}, "classic")
	require.NoError(t, err)
	_, err = s.Add(ctx, "Ls", "ls -la", "bash", nil, "")
	require.NoError(t, err)

	exported, err := s.ExportJSON(ctx)
	require.NoError(t, err)

	fresh, _ := newTestStore(t)
	imported, err := fresh.ImportJSON(ctx, exported)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	byTitle := map[string]string{}
	for _, snippet := range fresh.AllSnippets(ctx) {
		byTitle[snippet.Title] = snippet.Code
	}
	assert.Equal(t, "def fib(n): ...", byTitle["Fib"])
	assert.Equal(t, "ls -la", byTitle["Ls"])
}

func TestExportJSON_MatchesDurableDocument(t *testing.T) {
	s, backend := newTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "Only", "code", "go", nil, "")
	require.NoError(t, err)

	exported, err := s.ExportJSON(ctx)
	require.NoError(t, err)

	durable, err := backend.Load(ctx, storage.SnippetsDocument)
	require.NoError(t, err)
	assert.JSONEq(t, string(durable), string(exported))
}
