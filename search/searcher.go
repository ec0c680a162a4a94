package search

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/snipstash/core"
)

const (
	// MinScore is the relevance floor: snippets whose composite score falls
	// below it are excluded when a query is given.
	MinScore = 20.0

	// DefaultLimit caps the result count when the query does not set one.
	DefaultLimit = 10
)

// SnippetSource supplies the candidate snippets, in a deterministic
// encounter order, without mutating usage stats.
type SnippetSource interface {
	AllSnippets(ctx context.Context) []*core.Snippet
}

// Query describes one search request.
type Query struct {
	// Text is the free-text query. Empty means "most used first" browsing:
	// snippets are ranked by usage count and the relevance floor does not
	// apply.
	Text string

	// Language restricts candidates to one language, case-insensitively.
	// Empty means no restriction.
	Language string

	// Tags restricts candidates to those carrying every listed tag.
	Tags []string

	// Limit caps the result count; non-positive falls back to DefaultLimit.
	Limit int
}

// Searcher ranks snippets from a source against free-text queries.
type Searcher struct {
	source SnippetSource
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent candidate scoring.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// NewSearcher creates a new searcher over the given snippet source.
func NewSearcher(source SnippetSource, opts ...Option) (*Searcher, error) {
	if source == nil {
		return nil, ErrSnippetSourceRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		source: source,
		pool:   pool,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			pool.Release()
			return nil, err
		}
	}

	return s, nil
}

// Close releases the scoring pool.
func (s *Searcher) Close() {
	s.pool.Release()
}

// Search filters, scores, ranks, and truncates snippets for the query.
// Results carry the composite score alongside each snippet.
func (s *Searcher) Search(ctx context.Context, query Query) ([]core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, query, nil)
}

// SearchWithMonitor is Search with observation hooks for each stage.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query Query, monitor SearchMonitor) ([]core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query.Text)

	var candidates []*core.Snippet
	for _, snippet := range s.source.AllSnippets(ctx) {
		if matchesFilters(snippet, query) {
			candidates = append(candidates, snippet)
		}
	}
	monitor.AfterFilter(len(candidates))

	scores := s.scoreCandidates(query.Text, candidates)

	results := make([]core.SearchResult, 0, len(candidates))
	for i, snippet := range candidates {
		if query.Text != "" && scores[i] < MinScore {
			monitor.Excluded(snippet.Id, scores[i])
			continue
		}
		monitor.Scored(snippet.Id, scores[i])
		results = append(results, core.SearchResult{Snippet: snippet, Score: scores[i]})
	}

	// Candidates arrive in encounter order, so a stable sort keeps ties
	// deterministic.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	monitor.Finish(results)

	return results, nil
}

// scoreCandidates computes composite scores, indexed to match candidates.
// With a query, scoring fans out over the worker pool; candidate slots
// keep the results in encounter order regardless of completion order.
func (s *Searcher) scoreCandidates(text string, candidates []*core.Snippet) []float64 {
	scores := make([]float64, len(candidates))

	if text == "" {
		for i, snippet := range candidates {
			scores[i] = float64(snippet.UsageCount)
		}
		return scores
	}

	var wg sync.WaitGroup
	for i, snippet := range candidates {
		wg.Add(1)
		if err := s.pool.Submit(func() {
			defer wg.Done()
			scores[i] = CompositeScore(text, snippet)
		}); err != nil {
			// Pool unavailable; score on the calling goroutine.
			s.logger.Debug("scoring inline, pool submit failed", "err", err)
			scores[i] = CompositeScore(text, snippet)
			wg.Done()
		}
	}
	wg.Wait()

	return scores
}

// CompositeScore combines the per-field fuzzy scores of one snippet into a
// single relevance score: the best of title (1.0), code (0.5), best tag
// (0.8), and description (0.6).
func CompositeScore(query string, snippet *core.Snippet) float64 {
	titleScore := Score(query, snippet.Title)
	codeScore := Score(query, snippet.Code) * codeWeight

	var tagScore float64
	for _, tag := range snippet.Tags {
		if fieldScore := Score(query, tag); fieldScore > tagScore {
			tagScore = fieldScore
		}
	}
	tagScore *= tagWeight

	descScore := Score(query, snippet.Description) * descriptionWeight

	return max(titleScore, codeScore, tagScore, descScore)
}

func matchesFilters(snippet *core.Snippet, query Query) bool {
	if query.Language != "" && snippet.Language != strings.ToLower(query.Language) {
		return false
	}
	for _, tag := range query.Tags {
		if !snippet.HasTag(tag) {
			return false
		}
	}
	return true
}
