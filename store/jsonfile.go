package store

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/maypok86/otter"
)

var log = slog.New(tint.NewHandler(os.Stderr, nil))

// FileStore keeps each collection as <dir>/<name>.json, a pretty-printed
// JSON array.
//
// Reads go through a byte-level cache so repeated Loads don't hit the disk.
// Only raw file bytes are cached; every Load parses fresh, so records handed
// to one caller are never aliased into another.
type FileStore struct {
	dir    string
	atomic bool
	cache  otter.Cache[string, []byte]
}

func NewFileStore(dir string, atomicWrites bool) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	cache, err := otter.MustBuilder[string, []byte](64).
		WithTTL(60 * time.Second).
		Build()
	if err != nil {
		return nil, err
	}

	return &FileStore{dir: dir, atomic: atomicWrites, cache: cache}, nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// Load never fails: a missing file is an empty collection, and a file that
// cannot be read or parsed is logged and served as empty. The site must keep
// rendering even when a collection file is broken.
func (s *FileStore) Load(collection string) ([]Record, error) {
	raw, ok := s.cache.Get(collection)
	if !ok {
		b, err := os.ReadFile(s.path(collection))
		if err != nil {
			if !os.IsNotExist(err) {
				log.Error("collection read failed", "collection", collection, "err", err)
			}
			return []Record{}, nil
		}
		raw = b
		s.cache.Set(collection, raw)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var records []Record
	if err := dec.Decode(&records); err != nil {
		log.Error("malformed collection file, serving empty", "collection", collection, "err", err)
		return []Record{}, nil
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (s *FileStore) Save(collection string, records []Record) error {
	if records == nil {
		records = []Record{}
	}

	b, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}

	if err := s.write(s.path(collection), b); err != nil {
		log.Error("collection save failed", "collection", collection, "err", err)
		return err
	}

	s.cache.Set(collection, b)
	return nil
}

// write overwrites the file in place by default. With atomic mode on it goes
// through a temp file and rename so a crash mid-write cannot leave a
// half-written collection behind.
func (s *FileStore) write(path string, b []byte) error {
	if !s.atomic {
		return os.WriteFile(path, b, 0o644)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func (s *FileStore) Ping() error {
	_, err := os.Stat(s.dir)
	return err
}

func (s *FileStore) Close() {
	s.cache.Close()
}
