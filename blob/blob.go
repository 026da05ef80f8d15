// Package blob stores uploaded images on the local filesystem under names
// that are safe to serve publicly.
package blob

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"
)

// Store writes uploads into a single flat directory. Files are written once
// and never rewritten or cleaned up; deleting a record does not delete the
// images it referenced.
type Store struct {
	dir string
}

// New creates the uploads directory if needed. Idempotent, called once at
// startup.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save writes the bytes under a generated <millis>-<random><ext> name and
// returns the public URL path. The random suffix keeps two uploads in the
// same millisecond from clobbering each other.
func (s *Store) Save(data []byte, originalName string) (string, error) {
	name := fmt.Sprintf("%d-%d%s",
		time.Now().UnixMilli(),
		rand.IntN(1_000_000_000),
		filepath.Ext(originalName))

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
