package store

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/pebble"
)

// Pebbledb stores each collection's serialized array under a single key in
// an embedded pebble database. Same contract as FileStore, different disk
// layout; selected with backend "pebble".
type Pebbledb struct {
	db *pebble.DB
}

func NewPebble(path string) (*Pebbledb, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Pebbledb{db: db}, nil
}

func collectionKey(collection string) []byte {
	return []byte("c\xff" + collection + "\xff")
}

func (p *Pebbledb) Load(collection string) ([]Record, error) {
	val, closer, err := p.db.Get(collectionKey(collection))
	if err != nil {
		if err == pebble.ErrNotFound {
			return []Record{}, nil
		}
		return nil, err
	}

	// copy out before the closer invalidates the value
	raw := make([]byte, len(val))
	copy(raw, val)
	closer.Close()

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var records []Record
	if err := dec.Decode(&records); err != nil {
		log.Error("malformed collection value, serving empty", "collection", collection, "err", err)
		return []Record{}, nil
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (p *Pebbledb) Save(collection string, records []Record) error {
	if records == nil {
		records = []Record{}
	}

	b, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}

	if err := p.db.Set(collectionKey(collection), b, pebble.Sync); err != nil {
		log.Error("collection save failed", "collection", collection, "err", err)
		return err
	}
	return nil
}

func (p *Pebbledb) Ping() error {
	return nil
}

func (p *Pebbledb) Close() {
	p.db.Close()
}
