// Package store persists named collections of schemaless records.
//
// A collection is one JSON array. The default backend keeps each collection
// in its own pretty-printed file; alternative backends hold the same arrays
// in an embedded database or in memory.
//
// There is no locking and no read-modify-write transaction: two concurrent
// callers that Load, mutate and Save the same collection race, and the last
// Save wins. Callers that need stronger guarantees do not exist in this
// system, so none are provided.
package store

// Record is one schemaless document. Numeric values decode as json.Number.
type Record map[string]any

type Store interface {
	// Load returns the collection in insertion order. A collection that
	// was never written is an empty slice, not an error.
	Load(collection string) ([]Record, error)

	// Save replaces the collection wholesale.
	Save(collection string, records []Record) error

	Ping() error
	Close()
}
