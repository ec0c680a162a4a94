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


package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/poiesic/snipstash/core"
)

// MarshalSnippets serializes the snippet collection as a JSON mapping from
// id to snippet object, 2-space indented, with UTF-8 left unescaped.
func MarshalSnippets(snippets map[string]*core.Snippet) ([]byte, error) {
	return marshalIndented(snippets)
}

// UnmarshalSnippets deserializes a snippet collection document.
// Empty input yields an empty collection.
func UnmarshalSnippets(data []byte) (map[string]*core.Snippet, error) {
	snippets := make(map[string]*core.Snippet)
	if len(data) == 0 {
		return snippets, nil
	}
	if err := json.Unmarshal(data, &snippets); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	for id, snippet := range snippets {
		if snippet == nil {
			delete(snippets, id)
			continue
		}
		// The mapping key is authoritative for the id.
		snippet.Id = id
	}
	return snippets, nil
}

// MarshalConfig serializes a config record.
func MarshalConfig(config core.Config) ([]byte, error) {
	return marshalIndented(config)
}

// UnmarshalConfig deserializes a config record on top of the defaults, so
// keys absent from the document keep their default values.
func UnmarshalConfig(data []byte) (core.Config, error) {
	config := core.DefaultConfig()
	if len(data) == 0 {
		return config, nil
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return core.DefaultConfig(), fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return config, nil
}

func marshalIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
