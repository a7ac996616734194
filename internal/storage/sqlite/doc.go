// Package sqlite provides SQLite-backed campaign persistence.
//
// It is the default on-disk store: one database file backs campaigns,
// memberships, characters, combat state, and the change event journal, so
// every mutation shares the same transaction and visibility boundaries.
package sqlite
