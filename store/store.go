package store

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/poiesic/snipstash/core"
	"github.com/poiesic/snipstash/storage"
)

// Store owns the snippet collection and its durable representation.
// Every mutating call runs the full load-mutate-persist cycle under one
// mutex before returning, so a read immediately following a write observes
// that write. The durable documents are assumed to have a single writer;
// there is no cross-process coordination.
type Store struct {
	mu       sync.Mutex
	backend  storage.Backend
	snippets map[string]*core.Snippet
	config   core.Config
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a Store over the given backend and eagerly loads both durable
// documents. A malformed snippet document degrades to an empty collection
// and a malformed config document degrades to defaults; corruption never
// blocks startup.
func New(backend storage.Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}

	s := &Store{
		backend:  backend,
		snippets: make(map[string]*core.Snippet),
		config:   core.DefaultConfig(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	ctx := context.Background()

	data, err := backend.Load(ctx, storage.SnippetsDocument)
	if err != nil {
		return nil, err
	}
	snippets, err := storage.UnmarshalSnippets(data)
	if err != nil {
		s.logger.Warn("snippet document is malformed, starting with an empty collection", "err", err)
		snippets = make(map[string]*core.Snippet)
	}
	s.snippets = snippets

	confData, err := backend.Load(ctx, storage.ConfigDocument)
	if err != nil {
		return nil, err
	}
	config, err := storage.UnmarshalConfig(confData)
	if err != nil {
		s.logger.Warn("config document is malformed, using defaults", "err", err)
	}
	s.config = config

	return s, nil
}

// Add creates a new snippet and persists the collection. The title and
// description are trimmed, the language and tags normalized to lower-case
// trimmed form, and a fresh id assigned. Returns the new snippet's id.
func (s *Store) Add(ctx context.Context, title, code, language string, tags []string, description string) (string, error) {
	snippet := &core.Snippet{
		Title:       title,
		Code:        code,
		Language:    language,
		Tags:        tags,
		Description: description,
	}
	if err := core.ValidateSnippet(snippet); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	snippet.Id = s.freshId()
	snippet.Title = strings.TrimSpace(title)
	snippet.Language = core.NormalizeLanguage(language)
	snippet.Tags = core.NormalizeTags(tags)
	snippet.Description = strings.TrimSpace(description)
	snippet.CreatedAt = now
	snippet.UpdatedAt = now
	snippet.UsageCount = 0

	s.snippets[snippet.Id] = snippet
	if err := s.persist(ctx); err != nil {
		delete(s.snippets, snippet.Id)
		return "", err
	}
	return snippet.Id, nil
}

// Get retrieves a snippet by id. This is a side-effecting read: every
// successful call increments the snippet's usage count, stamps its
// last-used time, and persists the change. Returns storage.ErrNotFound
// for an unknown id.
func (s *Store) Get(ctx context.Context, id string) (*core.Snippet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snippet, ok := s.snippets[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	prevUsed := snippet.LastUsed
	snippet.UsageCount++
	snippet.LastUsed = time.Now().UTC()
	if err := s.persist(ctx); err != nil {
		snippet.UsageCount--
		snippet.LastUsed = prevUsed
		return nil, err
	}
	return snippet.Clone(), nil
}

// Peek retrieves a snippet by id without touching its usage stats.
func (s *Store) Peek(ctx context.Context, id string) (*core.Snippet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snippet, ok := s.snippets[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return snippet.Clone(), nil
}

// Update applies a partial mutation to an existing snippet. Nil fields in
// the update are left untouched. A supplied tag list is re-normalized and
// a supplied language is re-folded to lower-case. UpdatedAt is always
// refreshed on success. Returns storage.ErrNotFound for an unknown id.
func (s *Store) Update(ctx context.Context, id string, update core.FieldUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snippet, ok := s.snippets[id]
	if !ok {
		return storage.ErrNotFound
	}

	prev := snippet.Clone()

	if update.Title != nil {
		snippet.Title = *update.Title
	}
	if update.Code != nil {
		snippet.Code = *update.Code
	}
	if update.Language != nil {
		snippet.Language = core.NormalizeLanguage(*update.Language)
	}
	if update.Tags != nil {
		snippet.Tags = core.NormalizeTags(*update.Tags)
	}
	if update.Description != nil {
		snippet.Description = *update.Description
	}
	snippet.UpdatedAt = time.Now().UTC()

	if err := s.persist(ctx); err != nil {
		s.snippets[id] = prev
		return err
	}
	return nil
}

// Delete removes a snippet by id. The id is never reused afterwards.
// Returns storage.ErrNotFound for an unknown id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snippet, ok := s.snippets[id]
	if !ok {
		return storage.ErrNotFound
	}

	delete(s.snippets, id)
	if err := s.persist(ctx); err != nil {
		s.snippets[id] = snippet
		return err
	}
	return nil
}

// AllSnippets returns copies of every snippet in creation order, without
// touching usage stats. Creation order is the deterministic encounter
// order the matcher relies on for ranking ties.
func (s *Store) AllSnippets(ctx context.Context) []*core.Snippet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allLocked()
}

// TagCounts returns every tag with the number of snippets carrying it,
// sorted by count descending. Ties keep first-seen order from the
// creation-ordered scan.
func (s *Store) TagCounts(ctx context.Context) []core.TagCount {
	s.mu.Lock()
	defer s.mu.Unlock()

	return countTable(s.allLocked(), func(snippet *core.Snippet) []string {
		return snippet.Tags
	})
}

// LanguageCounts returns every language with the number of snippets using
// it, with the same ordering rule as TagCounts.
func (s *Store) LanguageCounts(ctx context.Context) []core.TagCount {
	s.mu.Lock()
	defer s.mu.Unlock()

	return countTable(s.allLocked(), func(snippet *core.Snippet) []string {
		return []string{snippet.Language}
	})
}

// Stats summarizes the collection.
func (s *Store) Stats(ctx context.Context) core.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := core.Stats{TotalSnippets: len(s.snippets)}
	languages := make(map[string]bool)
	tags := make(map[string]bool)
	for _, snippet := range s.snippets {
		languages[snippet.Language] = true
		for _, tag := range snippet.Tags {
			tags[tag] = true
		}
		stats.TotalUsage += snippet.UsageCount
	}
	stats.UniqueLanguages = len(languages)
	stats.UniqueTags = len(tags)
	return stats
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// allLocked returns clones of all snippets sorted by creation time, then
// id. Caller must hold the mutex.
func (s *Store) allLocked() []*core.Snippet {
	snippets := make([]*core.Snippet, 0, len(s.snippets))
	for _, snippet := range s.snippets {
		snippets = append(snippets, snippet.Clone())
	}
	sort.Slice(snippets, func(i, j int) bool {
		if !snippets[i].CreatedAt.Equal(snippets[j].CreatedAt) {
			return snippets[i].CreatedAt.Before(snippets[j].CreatedAt)
		}
		return snippets[i].Id < snippets[j].Id
	})
	return snippets
}

// persist writes the whole collection as one atomic document.
// Caller must hold the mutex.
func (s *Store) persist(ctx context.Context) error {
	data, err := storage.MarshalSnippets(s.snippets)
	if err != nil {
		return err
	}
	return s.backend.Store(ctx, storage.SnippetsDocument, data)
}

// freshId generates an id not present in the collection.
// Caller must hold the mutex.
func (s *Store) freshId() string {
	for {
		id := core.NewId()
		if _, taken := s.snippets[id]; !taken {
			return id
		}
	}
}

func countTable(snippets []*core.Snippet, keys func(*core.Snippet) []string) []core.TagCount {
	counts := make(map[string]int)
	var order []string
	for _, snippet := range snippets {
		for _, key := range keys(snippet) {
			if _, seen := counts[key]; !seen {
				order = append(order, key)
			}
			counts[key]++
		}
	}

	table := make([]core.TagCount, 0, len(order))
	for _, key := range order {
		table = append(table, core.TagCount{Name: key, Count: counts[key]})
	}
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Count > table[j].Count
	})
	return table
}
