package collection

import "motohub/store"

// SuccessionBrand is the sentinel brand value that routes a bike record
// into the successions collection instead of bikes. The two collections are
// stored apart but presented as one list.
const SuccessionBrand = "SUCCESSION"

// BikeView is the combined read/write facade over the bikes and successions
// collections. Writes branch on the brand field, reads concatenate bikes
// first, successions after.
type BikeView struct {
	bikes       *Collection
	successions *Collection
}

func NewBikeView(db store.Store) *BikeView {
	return &BikeView{
		bikes:       New(db, "bikes"),
		successions: New(db, "successions"),
	}
}

func (v *BikeView) Bikes() *Collection       { return v.bikes }
func (v *BikeView) Successions() *Collection { return v.successions }

func (v *BikeView) List() ([]store.Record, error) {
	bikes, err := v.bikes.List()
	if err != nil {
		return nil, err
	}
	successions, err := v.successions.List()
	if err != nil {
		return nil, err
	}
	return append(bikes, successions...), nil
}

// GetBySlug returns the first record in combined-list order whose slug
// field matches.
func (v *BikeView) GetBySlug(slug string) (store.Record, bool, error) {
	combined, err := v.List()
	if err != nil {
		return nil, false, err
	}
	for _, r := range combined {
		if s, ok := r["slug"].(string); ok && s == slug {
			return r, true, nil
		}
	}
	return nil, false, nil
}

func (v *BikeView) Upsert(rec store.Record) (store.Record, bool, error) {
	if brand, _ := rec["brand"].(string); brand == SuccessionBrand {
		return v.successions.Upsert(rec)
	}
	return v.bikes.Upsert(rec)
}

// DeleteByID tries bikes first and persists only bikes when something was
// removed there. Only when bikes had no match does it fall through to
// successions, which is then persisted even if nothing matched there
// either, so deleting an unknown id still rewrites the successions file.
// The rewrite-on-miss is longstanding behavior the admin UI tolerates.
func (v *BikeView) DeleteByID(id string) (bool, error) {
	removed, err := v.bikes.removeMatching(id, false)
	if err != nil {
		return false, err
	}
	if removed {
		return true, nil
	}
	return v.successions.removeMatching(id, true)
}
