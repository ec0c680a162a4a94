package store

import (
	"context"

	"github.com/poiesic/snipstash/core"
	"github.com/poiesic/snipstash/storage"
)

// Config returns the current user configuration. Settings absent from the
// durable config document keep their defaults.
func (s *Store) Config(ctx context.Context) core.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// SetConfig replaces the user configuration and persists it.
func (s *Store) SetConfig(ctx context.Context, config core.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := storage.MarshalConfig(config)
	if err != nil {
		return err
	}
	if err := s.backend.Store(ctx, storage.ConfigDocument, data); err != nil {
		return err
	}
	s.config = config
	return nil
}
