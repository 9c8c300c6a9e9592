package core

// Hand-maintained MUS serializers for the persisted entities. The set of
// stored types is small and fixed, so these are written out directly against
// the mus-go runtime instead of being generated. Field order is part of the
// storage format; append new fields at the end.

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

var (
	// IDMUS serializes entity IDs.
	IDMUS = idMUS{}
	// TimeMUS serializes timestamps with microsecond precision.
	TimeMUS = timeMUS{}
	// LanguageMUS serializes Language records.
	LanguageMUS = languageMUS{}
	// SearchQueryMUS serializes SearchQuery records.
	SearchQueryMUS = searchQueryMUS{}
	// SynonymSelectionMUS serializes SynonymSelection facts.
	SynonymSelectionMUS = synonymSelectionMUS{}
	// ConceptViewMUS serializes ConceptView facts.
	ConceptViewMUS = conceptViewMUS{}
	// ConceptRecordMUS serializes ConceptRecord catalog entries.
	ConceptRecordMUS = conceptRecordMUS{}

	stringSliceMUS = ord.NewSliceSer[string](ord.String)
)

var (
	_ mus.Serializer[ID]               = IDMUS
	_ mus.Serializer[time.Time]        = TimeMUS
	_ mus.Serializer[Language]         = LanguageMUS
	_ mus.Serializer[SearchQuery]      = SearchQueryMUS
	_ mus.Serializer[SynonymSelection] = SynonymSelectionMUS
	_ mus.Serializer[ConceptView]      = ConceptViewMUS
	_ mus.Serializer[ConceptRecord]    = ConceptRecordMUS
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// timeMUS stores time.Time as Unix microseconds in UTC. Zero times round-trip
// through UnixMicro and come back non-zero; persisted entities always carry
// real timestamps, so that is acceptable here.
type timeMUS struct{}

func (timeMUS) Marshal(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func (timeMUS) Unmarshal(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func (timeMUS) Size(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

func (timeMUS) Skip(bs []byte) (int, error) {
	return varint.Int64.Skip(bs)
}

type languageMUS struct{}

func (languageMUS) Marshal(l Language, bs []byte) int {
	n := ord.String.Marshal(l.Code, bs)
	n += ord.String.Marshal(l.Label, bs[n:])
	n += ord.String.Marshal(l.NativeName, bs[n:])
	n += TimeMUS.Marshal(l.InsertedAt, bs[n:])
	n += TimeMUS.Marshal(l.UpdatedAt, bs[n:])
	return n
}

func (languageMUS) Unmarshal(bs []byte) (l Language, n int, err error) {
	var c int
	if l.Code, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if l.Label, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return l, n + c, err
	}
	n += c
	if l.NativeName, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return l, n + c, err
	}
	n += c
	if l.InsertedAt, c, err = TimeMUS.Unmarshal(bs[n:]); err != nil {
		return l, n + c, err
	}
	n += c
	l.UpdatedAt, c, err = TimeMUS.Unmarshal(bs[n:])
	return l, n + c, err
}

func (languageMUS) Size(l Language) int {
	return ord.String.Size(l.Code) +
		ord.String.Size(l.Label) +
		ord.String.Size(l.NativeName) +
		TimeMUS.Size(l.InsertedAt) +
		TimeMUS.Size(l.UpdatedAt)
}

func (languageMUS) Skip(bs []byte) (n int, err error) {
	var c int
	for i := 0; i < 3; i++ {
		if c, err = ord.String.Skip(bs[n:]); err != nil {
			return n + c, err
		}
		n += c
	}
	for i := 0; i < 2; i++ {
		if c, err = TimeMUS.Skip(bs[n:]); err != nil {
			return n + c, err
		}
		n += c
	}
	return n, nil
}

type searchQueryMUS struct{}

func (searchQueryMUS) Marshal(q SearchQuery, bs []byte) int {
	n := IDMUS.Marshal(q.Id, bs)
	n += ord.String.Marshal(q.Term, bs[n:])
	n += ord.String.Marshal(q.LanguageCode, bs[n:])
	n += ord.Bool.Marshal(q.LedToConceptLookup, bs[n:])
	n += TimeMUS.Marshal(q.CreatedAt, bs[n:])
	return n
}

func (searchQueryMUS) Unmarshal(bs []byte) (q SearchQuery, n int, err error) {
	var c int
	if q.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if q.Term, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return q, n + c, err
	}
	n += c
	if q.LanguageCode, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return q, n + c, err
	}
	n += c
	if q.LedToConceptLookup, c, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return q, n + c, err
	}
	n += c
	q.CreatedAt, c, err = TimeMUS.Unmarshal(bs[n:])
	return q, n + c, err
}

func (searchQueryMUS) Size(q SearchQuery) int {
	return IDMUS.Size(q.Id) +
		ord.String.Size(q.Term) +
		ord.String.Size(q.LanguageCode) +
		ord.Bool.Size(q.LedToConceptLookup) +
		TimeMUS.Size(q.CreatedAt)
}

func (searchQueryMUS) Skip(bs []byte) (n int, err error) {
	var c int
	if n, err = IDMUS.Skip(bs); err != nil {
		return
	}
	if c, err = ord.String.Skip(bs[n:]); err != nil {
		return n + c, err
	}
	n += c
	if c, err = ord.String.Skip(bs[n:]); err != nil {
		return n + c, err
	}
	n += c
	if c, err = ord.Bool.Skip(bs[n:]); err != nil {
		return n + c, err
	}
	n += c
	c, err = TimeMUS.Skip(bs[n:])
	return n + c, err
}

type synonymSelectionMUS struct{}

func (synonymSelectionMUS) Marshal(s SynonymSelection, bs []byte) int {
	n := IDMUS.Marshal(s.SearchId, bs)
	n += ord.String.Marshal(s.Synonym, bs[n:])
	n += TimeMUS.Marshal(s.SelectedAt, bs[n:])
	return n
}

func (synonymSelectionMUS) Unmarshal(bs []byte) (s SynonymSelection, n int, err error) {
	var c int
	if s.SearchId, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if s.Synonym, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + c, err
	}
	n += c
	s.SelectedAt, c, err = TimeMUS.Unmarshal(bs[n:])
	return s, n + c, err
}

func (synonymSelectionMUS) Size(s SynonymSelection) int {
	return IDMUS.Size(s.SearchId) +
		ord.String.Size(s.Synonym) +
		TimeMUS.Size(s.SelectedAt)
}

func (synonymSelectionMUS) Skip(bs []byte) (n int, err error) {
	var c int
	if n, err = IDMUS.Skip(bs); err != nil {
		return
	}
	if c, err = ord.String.Skip(bs[n:]); err != nil {
		return n + c, err
	}
	n += c
	c, err = TimeMUS.Skip(bs[n:])
	return n + c, err
}

type conceptViewMUS struct{}

func (conceptViewMUS) Marshal(v ConceptView, bs []byte) int {
	n := ord.String.Marshal(v.Name, bs)
	n += TimeMUS.Marshal(v.ViewedAt, bs[n:])
	return n
}

func (conceptViewMUS) Unmarshal(bs []byte) (v ConceptView, n int, err error) {
	var c int
	if v.Name, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	v.ViewedAt, c, err = TimeMUS.Unmarshal(bs[n:])
	return v, n + c, err
}

func (conceptViewMUS) Size(v ConceptView) int {
	return ord.String.Size(v.Name) + TimeMUS.Size(v.ViewedAt)
}

func (conceptViewMUS) Skip(bs []byte) (n int, err error) {
	var c int
	if n, err = ord.String.Skip(bs); err != nil {
		return
	}
	c, err = TimeMUS.Skip(bs[n:])
	return n + c, err
}

type conceptRecordMUS struct{}

func (conceptRecordMUS) Marshal(r ConceptRecord, bs []byte) int {
	n := IDMUS.Marshal(r.Id, bs)
	n += ord.String.Marshal(r.Code, bs[n:])
	n += ord.String.Marshal(r.Name, bs[n:])
	n += ord.String.Marshal(r.ClassName, bs[n:])
	n += ord.String.Marshal(r.Domain, bs[n:])
	n += ord.String.Marshal(r.Vocabulary, bs[n:])
	n += varint.Int.Marshal(int(r.Standard), bs[n:])
	n += ord.String.Marshal(r.InvalidReason, bs[n:])
	n += stringSliceMUS.Marshal(r.Synonyms, bs[n:])
	return n
}

func (conceptRecordMUS) Unmarshal(bs []byte) (r ConceptRecord, n int, err error) {
	var c int
	if r.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	fields := []*string{&r.Code, &r.Name, &r.ClassName, &r.Domain, &r.Vocabulary}
	for _, f := range fields {
		if *f, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return r, n + c, err
		}
		n += c
	}
	var std int
	if std, c, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return r, n + c, err
	}
	r.Standard = StandardConcept(std)
	n += c
	if r.InvalidReason, c, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + c, err
	}
	n += c
	r.Synonyms, c, err = stringSliceMUS.Unmarshal(bs[n:])
	return r, n + c, err
}

func (conceptRecordMUS) Size(r ConceptRecord) int {
	return IDMUS.Size(r.Id) +
		ord.String.Size(r.Code) +
		ord.String.Size(r.Name) +
		ord.String.Size(r.ClassName) +
		ord.String.Size(r.Domain) +
		ord.String.Size(r.Vocabulary) +
		varint.Int.Size(int(r.Standard)) +
		ord.String.Size(r.InvalidReason) +
		stringSliceMUS.Size(r.Synonyms)
}

func (conceptRecordMUS) Skip(bs []byte) (n int, err error) {
	var c int
	if n, err = IDMUS.Skip(bs); err != nil {
		return
	}
	for i := 0; i < 5; i++ {
		if c, err = ord.String.Skip(bs[n:]); err != nil {
			return n + c, err
		}
		n += c
	}
	if c, err = varint.Int.Skip(bs[n:]); err != nil {
		return n + c, err
	}
	n += c
	if c, err = ord.String.Skip(bs[n:]); err != nil {
		return n + c, err
	}
	n += c
	c, err = stringSliceMUS.Skip(bs[n:])
	return n + c, err
}
