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


// Package storage provides the storage abstraction layer for snipstash.
//
// The collection is small (hundreds to low thousands of snippets), so the
// durable representation is deliberately simple: two named documents, each
// written as one atomic unit per mutation. The snippet document is a JSON
// mapping from id to snippet object; the config document is a JSON object
// of user settings. Both are human-readable UTF-8 and round-trip through
// the import/export commands unchanged.
//
// # Backends
//
// Backend implementations persist whole documents:
//
//   - file: one file per document in a data directory, replaced atomically
//     via a temp file and rename.
//   - badger: each document under a single BadgerDB key, written in one
//     transaction. Supports a pure in-memory mode, which the tests use.
//
// Constructors return the Backend interface so consumers never couple to a
// concrete backend:
//
//	backend, err := file.Open("/home/user/.snipstash")
//	backend, err := badger.Open("/home/user/.snipstash/db", false)
//
// # Consistency
//
// A Load immediately following a Store observes that Store. There is no
// cross-process writer protocol: the tool assumes a single writer, and a
// second process writing between this process's load and save is silently
// overwritten.
package storage
