// Package analytics records and aggregates search history.
//
// The package has two halves with different failure postures:
//
//   - Recorder appends facts (searches, synonym selections, concept views).
//     Writes are best-effort: persistence failures are logged and swallowed
//     so analytics can never break a user-facing operation.
//   - Aggregator derives read-only rollups (metrics snapshots, search paths)
//     from the full history. Read failures are returned to the caller.
//
// Nothing in this package deletes or rewrites history; facts are append-only.
package analytics
