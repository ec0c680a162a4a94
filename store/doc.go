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


// Package store implements the snippet collection over a storage backend.
//
// The Store keeps the whole collection in memory and re-persists it as one
// atomic document on every mutation, which is the right trade at snippet
// scale. Retrieval by id is deliberately a side-effecting read: it bumps
// the snippet's usage count, which drives the "most used first" ordering
// of browsing without a query.
package store
