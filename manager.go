// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package snipstash

import (
	"log/slog"

	"github.com/poiesic/snipstash/search"
	"github.com/poiesic/snipstash/storage"
	"github.com/poiesic/snipstash/storage/file"
	"github.com/poiesic/snipstash/store"
)

// Manager wires a storage backend, the snippet store, and the searcher
// into one handle. It is the entry point library consumers and the CLI
// share.
type Manager struct {
	backend  storage.Backend
	store    *store.Store
	searcher *search.Searcher
	logger   *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*managerOptions)

type managerOptions struct {
	backend storage.Backend
	logger  *slog.Logger
}

// WithBackend injects a storage backend, overriding the default
// file-backed one. Tests use this with an in-memory backend.
func WithBackend(backend storage.Backend) ManagerOption {
	return func(o *managerOptions) {
		o.backend = backend
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(o *managerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewManager opens a snippet manager over the data directory. The default
// backend stores the durable documents as files under dataDir; an injected
// backend ignores dataDir entirely.
func NewManager(dataDir string, opts ...ManagerOption) (*Manager, error) {
	options := &managerOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend := options.backend
	if backend == nil {
		fileBackend, err := file.Open(dataDir)
		if err != nil {
			return nil, err
		}
		backend = fileBackend
	}

	snippetStore, err := store.New(backend, store.WithLogger(options.logger))
	if err != nil {
		backend.Close()
		return nil, err
	}

	searcher, err := search.NewSearcher(snippetStore, search.WithLogger(options.logger))
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Manager{
		backend:  backend,
		store:    snippetStore,
		searcher: searcher,
		logger:   options.logger,
	}, nil
}

// Close releases the searcher's resources and the backend.
func (m *Manager) Close() error {
	m.searcher.Close()
	if err := m.backend.Close(); err != nil {
		m.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Store returns the snippet store.
func (m *Manager) Store() *store.Store {
	return m.store
}

// Searcher returns the searcher.
func (m *Manager) Searcher() *search.Searcher {
	return m.searcher
}
