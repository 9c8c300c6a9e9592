// Package ingestion bulk-loads vocabulary exports into the concept store.
//
// The loader understands OMOP-style tab-separated exports: CONCEPT for the
// records, CONCEPT_SYNONYM for lexical variants, and CONCEPT_RELATIONSHIP
// for "Maps to" edges (other relationship types are ignored). Writes go
// through the vocabulary repository in pooled batches. Ingestion is a
// pre-load step; the resolution service treats the vocabulary as read-only.
package ingestion
