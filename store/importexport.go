package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/poiesic/snipstash/core"
	"github.com/poiesic/snipstash/storage"
)

// importEntry is the shape accepted for one imported snippet. Only code is
// required; everything else falls back to a default.
type importEntry struct {
	Title       string   `json:"title"`
	Code        string   `json:"code"`
	Language    string   `json:"language"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

// ImportJSON inserts snippets from an exported or hand-written JSON
// document. The document may be a mapping of objects, in which case the
// mapping key is the fallback title, or a sequence of objects with
// "Untitled" as the fallback. Every accepted entry goes through the normal
// add path: fresh id, fresh timestamps, zero usage count. Ids and
// counters from the source document are never preserved.
//
// Import is best-effort: entries of the wrong shape, or missing code, are
// skipped silently. Returns the number of snippets imported.
func (s *Store) ImportJSON(ctx context.Context, data []byte) (int, error) {
	var byTitle map[string]json.RawMessage
	if err := json.Unmarshal(data, &byTitle); err == nil {
		return s.importEntries(ctx, mappingEntries(byTitle))
	}

	var sequence []json.RawMessage
	if err := json.Unmarshal(data, &sequence); err == nil {
		return s.importEntries(ctx, sequenceEntries(sequence))
	}

	return 0, ErrUnrecognizedImport
}

// ExportJSON returns the raw current collection mapping, in the same
// format the snippet document is persisted in.
func (s *Store) ExportJSON(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return storage.MarshalSnippets(s.snippets)
}

type pendingImport struct {
	fallbackTitle string
	raw           json.RawMessage
}

func mappingEntries(byTitle map[string]json.RawMessage) []pendingImport {
	pending := make([]pendingImport, 0, len(byTitle))
	for key, raw := range byTitle {
		pending = append(pending, pendingImport{fallbackTitle: key, raw: raw})
	}
	return pending
}

func sequenceEntries(sequence []json.RawMessage) []pendingImport {
	pending := make([]pendingImport, 0, len(sequence))
	for _, raw := range sequence {
		pending = append(pending, pendingImport{fallbackTitle: "Untitled", raw: raw})
	}
	return pending
}

func (s *Store) importEntries(ctx context.Context, pending []pendingImport) (int, error) {
	imported := 0
	for _, item := range pending {
		var entry importEntry
		if err := json.Unmarshal(item.raw, &entry); err != nil {
			s.logger.Debug("skipping malformed import entry", "err", err)
			continue
		}
		title := entry.Title
		if title == "" {
			title = item.fallbackTitle
		}

		_, err := s.Add(ctx, title, entry.Code, entry.Language, entry.Tags, entry.Description)
		if err != nil {
			if errors.Is(err, core.ErrInvalidSnippet) {
				s.logger.Debug("skipping invalid import entry", "title", title, "err", err)
				continue
			}
			// Backend failure, not a bad entry; stop and report.
			return imported, err
		}
		imported++
	}
	return imported, nil
}
