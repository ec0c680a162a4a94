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

import "errors"

// Domain validation errors
var (
	// ErrInvalidSnippet indicates a Snippet failed validation.
	ErrInvalidSnippet = errors.New("invalid snippet")

	// ErrEmptyTitle indicates the Title field is empty after trimming.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyCode indicates the Code field is empty after trimming.
	ErrEmptyCode = errors.New("code cannot be empty")
)
