// Package registry manages the languages the system accepts searches in.
//
// Languages are created on user request: ResolveOrCreate turns a free-text
// language name into a canonical ISO 639-1 code, English label and native
// name via inference, and registers it. Codes are unique and immutable;
// Relabel changes only the display label. Seed installs the initial
// language set and is safe to run on every start.
package registry
