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


// Package search provides multi-field fuzzy ranking over snippets.
//
// The Searcher scans the full candidate set per query, which is the right
// trade at snippet-collection scale, and ranks with a tiered field score:
// exact match, containment, all-words-present, and a whole-string
// similarity fallback, each tier in a disjoint score band. Per-snippet
// composite scores take the best single weighted field rather than a sum.
// This is a heuristic matcher, not an IR system, and keeps no index
// structures.
package search
