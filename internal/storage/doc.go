// Package storage defines the persistence interfaces consumed by the
// service layer. Implementations live in subpackages (sqlite) and in test
// fakes; the guard layer only ever sees these interfaces.
package storage
