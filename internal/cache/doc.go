// Package cache keeps the last good content payloads in a local sqlite
// database (modernc.org/sqlite, no cgo).
//
// One row per section:
//
//	content_cache(section TEXT PRIMARY KEY, payload TEXT, fetched_at INTEGER)
//
// payload is the section's JSON as produced by content.Bundle.Encode and
// fetched_at is Unix milliseconds. The poller writes every section that
// fetched successfully; startup reads them back to seed the state store.
package cache
