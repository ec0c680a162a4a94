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


package core

import (
	"fmt"
	"strings"
)

// ValidateSnippet validates a Snippet according to domain rules.
//
// Validation rules:
//   - Title must not be empty after trimming
//   - Code must not be empty after trimming
//
// NOT validated:
//   - Language (an empty value normalizes to DefaultLanguage)
//   - Tags (normalization drops empty entries)
//   - Id (empty until the store assigns one)
func ValidateSnippet(snippet *Snippet) error {
	if snippet == nil {
		return fmt.Errorf("%w: snippet is nil", ErrInvalidSnippet)
	}

	if strings.TrimSpace(snippet.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSnippet, ErrEmptyTitle)
	}

	if strings.TrimSpace(snippet.Code) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSnippet, ErrEmptyCode)
	}

	return nil
}
