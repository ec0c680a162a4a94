package storage

import "context"

// Document names for the two durable records.
const (
	// SnippetsDocument holds the snippet collection as a JSON mapping
	// from id to snippet object.
	SnippetsDocument = "snippets.json"

	// ConfigDocument holds user configuration as JSON key/value pairs.
	ConfigDocument = "config.json"
)

// Backend persists named documents as atomic units. Each Store call
// replaces the whole document, so a Load immediately following a Store
// observes that Store. Implementations must be safe for concurrent use
// within one process; there is no cross-process writer coordination.
type Backend interface {
	// Load returns the current contents of the named document.
	// A document that has never been stored loads as (nil, nil).
	Load(ctx context.Context, name string) ([]byte, error)

	// Store atomically replaces the named document.
	Store(ctx context.Context, name string, data []byte) error

	// Close releases backend resources.
	Close() error
}
