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
	"github.com/poiesic/medlex/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalConceptRecord serializes a ConceptRecord to bytes.
func MarshalConceptRecord(record *core.ConceptRecord) []byte {
	buf := make([]byte, core.ConceptRecordMUS.Size(*record))
	core.ConceptRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalConceptRecord deserializes a ConceptRecord from bytes.
func UnmarshalConceptRecord(data []byte) (*core.ConceptRecord, error) {
	record, _, err := core.ConceptRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalLanguage serializes a Language to bytes.
func MarshalLanguage(lang *core.Language) []byte {
	buf := make([]byte, core.LanguageMUS.Size(*lang))
	core.LanguageMUS.Marshal(*lang, buf)
	return buf
}

// UnmarshalLanguage deserializes a Language from bytes.
func UnmarshalLanguage(data []byte) (*core.Language, error) {
	lang, _, err := core.LanguageMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &lang, nil
}

// MarshalSearchQuery serializes a SearchQuery to bytes.
func MarshalSearchQuery(query *core.SearchQuery) []byte {
	buf := make([]byte, core.SearchQueryMUS.Size(*query))
	core.SearchQueryMUS.Marshal(*query, buf)
	return buf
}

// UnmarshalSearchQuery deserializes a SearchQuery from bytes.
func UnmarshalSearchQuery(data []byte) (*core.SearchQuery, error) {
	query, _, err := core.SearchQueryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &query, nil
}

// MarshalSynonymSelection serializes a SynonymSelection to bytes.
func MarshalSynonymSelection(selection *core.SynonymSelection) []byte {
	buf := make([]byte, core.SynonymSelectionMUS.Size(*selection))
	core.SynonymSelectionMUS.Marshal(*selection, buf)
	return buf
}

// UnmarshalSynonymSelection deserializes a SynonymSelection from bytes.
func UnmarshalSynonymSelection(data []byte) (*core.SynonymSelection, error) {
	selection, _, err := core.SynonymSelectionMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &selection, nil
}

// MarshalConceptView serializes a ConceptView to bytes.
func MarshalConceptView(view *core.ConceptView) []byte {
	buf := make([]byte, core.ConceptViewMUS.Size(*view))
	core.ConceptViewMUS.Marshal(*view, buf)
	return buf
}

// UnmarshalConceptView deserializes a ConceptView from bytes.
func UnmarshalConceptView(data []byte) (*core.ConceptView, error) {
	view, _, err := core.ConceptViewMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
