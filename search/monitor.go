package search

import "github.com/poiesic/snipstash/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterFilter(candidates int)
	Scored(id string, score float64)
	Excluded(id string, score float64)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)               {}
func (n *noopMonitor) AfterFilter(_ int)            {}
func (n *noopMonitor) Scored(_ string, _ float64)   {}
func (n *noopMonitor) Excluded(_ string, _ float64) {}
func (n *noopMonitor) Finish(_ []core.SearchResult) {}
