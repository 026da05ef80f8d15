package store

import (
	"fmt"
	"path/filepath"
)

// New creates a Store for the named backend.
//
// Supported backends:
//
//	"json"   - one pretty-printed JSON file per collection (default)
//	"pebble" - embedded pebble database at dataDir/pebble
//	"memory" - ephemeral, for tests
func New(backend, dataDir string, atomicWrites bool) (Store, error) {
	switch backend {
	case "json", "":
		return NewFileStore(dataDir, atomicWrites)
	case "pebble":
		return NewPebble(filepath.Join(dataDir, "pebble"))
	case "memory":
		return NewMemstore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: json, pebble, memory)", backend)
	}
}
