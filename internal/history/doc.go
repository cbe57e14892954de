// Package history records every generation run in a small SQLite database.
//
// The store is opened per CLI invocation with WAL journaling and a busy
// timeout so concurrent runs on the same machine can append safely; writes
// are additionally retried on SQLITE_BUSY. The schema lives in schema.sql and
// is versioned: when the layout changes, bump schemaVersion and delete the
// database.
package history
