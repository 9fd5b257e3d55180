package item

import "time"

// View is one resolved snapshot generation. It never changes after [Resolve]
// returns; take a new snapshot and resolve again to see later writes.
type View struct {
	reg *Registry
	idx *Index
}

// Resolve builds the registry and relationship index for snap.
//
// Any dangling reference fails the whole call with a
// [*ReferentialIntegrityError]; partial views are never returned.
func Resolve(snap Snapshot) (*View, error) {
	reg, err := NewRegistry(snap)
	if err != nil {
		return nil, err
	}

	idx, err := NewIndex(reg, snap.Coverings, snap.TimeCoverings)
	if err != nil {
		return nil, err
	}

	return &View{reg: reg, idx: idx}, nil
}

// Registry returns the item registry.
func (v *View) Registry() *Registry {
	return v.reg
}

// Index returns the relationship index.
func (v *View) Index() *Index {
	return v.idx
}

// NextStep is an actionable to-do with the goals it serves.
//
// When the ancestor walk hit a cycle, Err holds the [*CycleError] and Ancestors
// holds the part of the tree built before the cycle was found.
type NextStep struct {
	Item      *Item
	Ancestors *Node
	Err       error
}

// Chain returns the flattened ancestor chain of the step.
func (s NextStep) Chain() []*Item {
	return s.Ancestors.Chain()
}

// ActionableItems returns the actionable to-dos at now, in snapshot order, each
// with its ancestor tree. A cycle in one item's ancestry is reported on that
// step and does not affect the others.
func (v *View) ActionableItems(now time.Time, focusTime bool) []NextStep {
	actionable := Actionable(v.reg.OfKind(KindToDo), v.idx, now, focusTime)
	steps := make([]NextStep, 0, len(actionable))

	for _, it := range actionable {
		node, err := Ancestors(v.idx, it.ID)
		steps = append(steps, NextStep{Item: it, Ancestors: node, Err: err})
	}

	return steps
}

// AncestorsOf returns the ancestor tree of id. A lookup miss returns
// [ErrNotFound]; a cycle returns the partial tree and a [*CycleError].
func (v *View) AncestorsOf(id string) (*Node, error) {
	return Ancestors(v.idx, id)
}

// BlockersOf returns the unfinished items currently covering id.
func (v *View) BlockersOf(id string) ([]*Item, error) {
	if _, err := v.reg.Lookup(id); err != nil {
		return nil, err
	}

	return v.idx.CoveredBy(id), nil
}
