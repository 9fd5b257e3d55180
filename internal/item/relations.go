package item

import "time"

// Covering is a resolved covering edge: Parent is suppressed while Smaller is
// unfinished.
type Covering struct {
	ID      string
	Smaller *Item
	Parent  *Item
}

// TimeCovering is a resolved time covering: Item is suppressed while the
// current time is before Until.
type TimeCovering struct {
	ID    string
	Item  *Item
	Until time.Time
}

// Index resolves covering and time-covering records against a [Registry] and
// indexes them by the ids they touch, so every per-item question is answered
// without scanning all edges.
type Index struct {
	reg           *Registry
	coverings     []Covering
	timeCoverings []TimeCovering
	byParent      map[string][]int
	bySmaller     map[string][]int
	timeByItem    map[string][]int
}

// NewIndex resolves every record against reg.
//
// A record that references an id missing from reg fails the whole call with a
// [*ReferentialIntegrityError]; no edge is ever dropped silently.
func NewIndex(reg *Registry, coverings []CoveringRecord, timeCoverings []TimeCoveringRecord) (*Index, error) {
	idx := &Index{
		reg:           reg,
		coverings:     make([]Covering, 0, len(coverings)),
		timeCoverings: make([]TimeCovering, 0, len(timeCoverings)),
		byParent:      make(map[string][]int),
		bySmaller:     make(map[string][]int),
		timeByItem:    make(map[string][]int),
	}

	for _, rec := range coverings {
		smaller, ok := reg.byID[rec.Smaller]
		if !ok {
			return nil, &ReferentialIntegrityError{Record: RecordCovering, RecordID: rec.ID, MissingID: rec.Smaller}
		}

		parent, ok := reg.byID[rec.Parent]
		if !ok {
			return nil, &ReferentialIntegrityError{Record: RecordCovering, RecordID: rec.ID, MissingID: rec.Parent}
		}

		pos := len(idx.coverings)
		idx.coverings = append(idx.coverings, Covering{ID: rec.ID, Smaller: smaller, Parent: parent})
		idx.byParent[parent.ID] = append(idx.byParent[parent.ID], pos)
		idx.bySmaller[smaller.ID] = append(idx.bySmaller[smaller.ID], pos)
	}

	for _, rec := range timeCoverings {
		it, ok := reg.byID[rec.Item]
		if !ok {
			return nil, &ReferentialIntegrityError{Record: RecordTimeCovering, RecordID: rec.ID, MissingID: rec.Item}
		}

		pos := len(idx.timeCoverings)
		idx.timeCoverings = append(idx.timeCoverings, TimeCovering{ID: rec.ID, Item: it, Until: rec.Until})
		idx.timeByItem[it.ID] = append(idx.timeByItem[it.ID], pos)
	}

	return idx, nil
}

// Registry returns the registry the index was resolved against.
func (idx *Index) Registry() *Registry {
	return idx.reg
}

// Coverings returns every covering edge in record order.
func (idx *Index) Coverings() []Covering {
	return idx.coverings
}

// CoveredBy returns the unfinished items currently covering id, in edge order.
func (idx *Index) CoveredBy(id string) []*Item {
	var out []*Item

	for _, pos := range idx.byParent[id] {
		if c := idx.coverings[pos]; !c.Smaller.IsFinished() {
			out = append(out, c.Smaller)
		}
	}

	return out
}

// Smaller returns every item with a covering edge onto id, finished or not.
func (idx *Index) Smaller(id string) []*Item {
	positions := idx.byParent[id]
	out := make([]*Item, 0, len(positions))

	for _, pos := range positions {
		out = append(out, idx.coverings[pos].Smaller)
	}

	return out
}

// Parents returns the items that id covers, in edge order. These are the larger
// items id serves.
func (idx *Index) Parents(id string) []*Item {
	positions := idx.bySmaller[id]
	out := make([]*Item, 0, len(positions))

	for _, pos := range positions {
		out = append(out, idx.coverings[pos].Parent)
	}

	return out
}

// IsCovered reports whether any unfinished item covers id. One unfinished
// blocker is enough; the item is released only when every blocker is finished.
func (idx *Index) IsCovered(id string) bool {
	for _, pos := range idx.byParent[id] {
		if !idx.coverings[pos].Smaller.IsFinished() {
			return true
		}
	}

	return false
}

// TimeCoverings returns the time coverings targeting id, in record order.
func (idx *Index) TimeCoverings(id string) []TimeCovering {
	positions := idx.timeByItem[id]
	out := make([]TimeCovering, 0, len(positions))

	for _, pos := range positions {
		out = append(out, idx.timeCoverings[pos])
	}

	return out
}

// IsTimeCovered reports whether id is covered until some instant after now.
// At exactly Until the item is no longer covered.
func (idx *Index) IsTimeCovered(id string, now time.Time) bool {
	for _, pos := range idx.timeByItem[id] {
		if now.Before(idx.timeCoverings[pos].Until) {
			return true
		}
	}

	return false
}
