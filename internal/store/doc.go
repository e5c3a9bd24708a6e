// Package store persists rendered inspections to a local SQLite log.
//
// The log exists so a debugging session's output survives the session:
// render results recorded with --db can be listed and diffed later. One
// table, WAL mode, a single writer connection, schema versioned through
// PRAGMA user_version.
package store
