package store

import (
	"bytes"
	"encoding/json"
	"sync"
)

// Memstore holds serialized collections in a map. Ephemeral, used in tests.
// It keeps the same serialize-on-save, parse-on-load shape as the file
// backend so tests observe identical value types (json.Number and friends).
type Memstore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemstore() *Memstore {
	return &Memstore{data: make(map[string][]byte)}
}

func (m *Memstore) Load(collection string) ([]Record, error) {
	m.mu.RLock()
	raw, ok := m.data[collection]
	m.mu.RUnlock()
	if !ok {
		return []Record{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var records []Record
	if err := dec.Decode(&records); err != nil {
		return []Record{}, nil
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (m *Memstore) Save(collection string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	b, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[collection] = b
	m.mu.Unlock()
	return nil
}

func (m *Memstore) Ping() error { return nil }

func (m *Memstore) Close() {}
