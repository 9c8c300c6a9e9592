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


// Package resolve matches free-text medical terms against the stored concept
// vocabulary.
//
// The Resolver type implements a multi-stage matching algorithm:
//   - Normalization: casefold, whitespace collapse, diacritic stripping
//   - Fuzzy scoring: Jaro-Winkler similarity over names and synonyms
//   - Standardization: "Maps to" traversal from non-standard hits to their
//     standard targets
//
// Matches are ranked so standard concepts surface first: exact standard hits,
// then standard hits by score, then everything else by score. Invalidated
// records sort after valid ones at equal rank.
package resolve
