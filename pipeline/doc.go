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

// Package pipeline orchestrates the term resolution journey: disambiguation
// of a raw term into candidate senses, synonym expansion for a chosen sense,
// and resolution of search text against the concept vocabulary.
//
// Stage failures are wrapped in StageError so callers can resume from the
// failed stage instead of restarting the journey. Inference results are
// memoized for a short window with single-flight semantics, so identical
// concurrent requests share one upstream call and repeated requests within
// the window see identical candidate lists.
//
// Journey provides an optional per-session state machine for callers that
// track journey progress; the Pipeline itself is stateless apart from the
// memo cache and safe for concurrent use.
package pipeline
