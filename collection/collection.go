// Package collection layers identity and timestamp handling on top of the
// store. Records stay schemaless: only id, created_at and updated_at are
// interpreted here, everything else passes through untouched.
package collection

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"motohub/store"
)

// isoLayout matches the millisecond ISO-8601 strings the admin UI expects.
const isoLayout = "2006-01-02T15:04:05.000Z"

func isoNow() string {
	return time.Now().UTC().Format(isoLayout)
}

// idString normalizes an id for comparison. Ids arrive as JSON numbers,
// strings from URL params, or int64 freshly assigned by Upsert; comparing
// their string forms tolerates all three.
func idString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

type Collection struct {
	name string
	db   store.Store
}

func New(db store.Store, name string) *Collection {
	return &Collection{name: name, db: db}
}

func (c *Collection) Name() string {
	return c.name
}

// List returns all records in insertion order.
func (c *Collection) List() ([]store.Record, error) {
	return c.db.Load(c.name)
}

func (c *Collection) GetByID(id string) (store.Record, bool, error) {
	records, err := c.db.Load(c.name)
	if err != nil {
		return nil, false, err
	}
	for _, r := range records {
		if idString(r["id"]) == id {
			return r, true, nil
		}
	}
	return nil, false, nil
}

// Upsert creates or updates a record by its id field.
//
// When the id matches an existing record, the incoming fields are shallow
// merged over it in place, created_at is kept and updated_at is refreshed.
// Otherwise the record is created: an id is assigned from the wall clock in
// milliseconds only when the client sent none (client-supplied ids are
// honored), both timestamps are set, and the record is inserted at the
// front so new entries list first.
//
// Ids are wall-clock milliseconds, so two creates in the same millisecond
// collide. Known limitation; existing data depends on these ids, so they
// stay.
//
// The returned bool reports whether a new record was created.
func (c *Collection) Upsert(rec store.Record) (store.Record, bool, error) {
	if rec == nil {
		rec = store.Record{}
	}

	records, err := c.db.Load(c.name)
	if err != nil {
		return nil, false, err
	}

	now := isoNow()

	if id, ok := rec["id"]; ok && id != nil {
		want := idString(id)
		for i, existing := range records {
			if idString(existing["id"]) != want {
				continue
			}
			created := existing["created_at"]
			for k, v := range rec {
				existing[k] = v
			}
			existing["created_at"] = created
			existing["updated_at"] = now
			records[i] = existing
			if err := c.db.Save(c.name, records); err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
	}

	if id, ok := rec["id"]; !ok || id == nil {
		rec["id"] = time.Now().UnixMilli()
	}
	rec["created_at"] = now
	rec["updated_at"] = now

	records = append([]store.Record{rec}, records...)
	if err := c.db.Save(c.name, records); err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

// DeleteByID filters out every record whose id matches and persists the
// collection when something was removed. Reports whether anything was.
func (c *Collection) DeleteByID(id string) (bool, error) {
	return c.removeMatching(id, false)
}

// removeMatching is DeleteByID with an option to persist even when no
// record matched. The bikes fallthrough needs that exact behavior.
func (c *Collection) removeMatching(id string, persistAlways bool) (bool, error) {
	records, err := c.db.Load(c.name)
	if err != nil {
		return false, err
	}

	kept := make([]store.Record, 0, len(records))
	for _, r := range records {
		if idString(r["id"]) == id {
			continue
		}
		kept = append(kept, r)
	}

	removed := len(kept) != len(records)
	if !removed && !persistAlways {
		return false, nil
	}
	return removed, c.db.Save(c.name, kept)
}
