package item

import (
	"fmt"
	"strings"
	"time"
)

// Registry owns the [Item] views of one snapshot generation, addressed by id.
// Edges never point into a Registry directly; they hold ids and resolve them
// through [Registry.Lookup].
type Registry struct {
	items []*Item
	byID  map[string]*Item
	// created is kept outside Item so that Item stays a plain view of what the
	// resolution rules look at.
	created map[string]time.Time
}

// NewRegistry builds one Item per item record, in snapshot order, each holding
// the requirements that target it.
//
// A requirement for an unknown item, or two item records with the same id,
// fails the whole call with a [*ReferentialIntegrityError].
func NewRegistry(snap Snapshot) (*Registry, error) {
	reg := &Registry{
		items:   make([]*Item, 0, len(snap.Items)),
		byID:    make(map[string]*Item, len(snap.Items)),
		created: make(map[string]time.Time, len(snap.Items)),
	}

	for _, rec := range snap.Items {
		if _, dup := reg.byID[rec.ID]; dup {
			return nil, &ReferentialIntegrityError{Record: RecordItem, RecordID: rec.ID, MissingID: rec.ID}
		}

		it := &Item{
			ID:       rec.ID,
			Summary:  rec.Summary,
			Finished: rec.Finished,
			Kind:     rec.Kind,
			Staging:  rec.Staging.Normalized(),
		}

		reg.items = append(reg.items, it)
		reg.byID[rec.ID] = it
		reg.created[rec.ID] = rec.Created
	}

	for _, req := range snap.Requirements {
		it, ok := reg.byID[req.For]
		if !ok {
			return nil, &ReferentialIntegrityError{Record: RecordRequirement, RecordID: req.ID, MissingID: req.For}
		}

		it.Requirements = append(it.Requirements, Requirement{ID: req.ID, Kind: req.Kind})
	}

	return reg, nil
}

// Items returns every item in snapshot order.
func (r *Registry) Items() []*Item {
	return r.items
}

// Len returns the number of items.
func (r *Registry) Len() int {
	return len(r.items)
}

// OfKind returns the items of one kind in snapshot order.
func (r *Registry) OfKind(kind Kind) []*Item {
	var out []*Item

	for _, it := range r.items {
		if it.Is(kind) {
			out = append(out, it)
		}
	}

	return out
}

// Lookup returns the item with the given id, or [ErrNotFound].
func (r *Registry) Lookup(id string) (*Item, error) {
	it, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return it, nil
}

// Created returns when the item was captured. The zero time means unknown.
func (r *Registry) Created(id string) time.Time {
	return r.created[id]
}

// Resolve finds an item by full id or by a case-insensitive prefix of its short
// id. A prefix that matches several items returns [ErrAmbiguousID].
func (r *Registry) Resolve(ref string) (*Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty id", ErrNotFound)
	}

	if it, ok := r.byID[ref]; ok {
		return it, nil
	}

	prefix := strings.ToUpper(ref)

	var matches []*Item

	for _, it := range r.items {
		if strings.HasPrefix(strings.ToUpper(it.ShortID()), prefix) {
			matches = append(matches, it)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, it := range matches {
			ids[i] = it.ShortID()
		}

		return nil, fmt.Errorf("%w: %s matches %s", ErrAmbiguousID, ref, strings.Join(ids, ", "))
	}
}
