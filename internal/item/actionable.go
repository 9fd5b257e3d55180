package item

import "time"

// Actionable returns the items that can be worked on at now, in input order.
//
// An item is actionable if it is unfinished, no unfinished item covers it, no
// time covering holds it back past now, and its circumstances are met.
func Actionable(items []*Item, idx *Index, now time.Time, focusTime bool) []*Item {
	var out []*Item

	for _, it := range items {
		if IsActionable(it, idx, now, focusTime) {
			out = append(out, it)
		}
	}

	return out
}

// IsActionable applies the [Actionable] predicate to one item.
func IsActionable(it *Item, idx *Index, now time.Time, focusTime bool) bool {
	if it.IsFinished() {
		return false
	}

	if idx.IsCovered(it.ID) {
		return false
	}

	if idx.IsTimeCovered(it.ID, now) {
		return false
	}

	return CircumstancesMet(it, now, focusTime)
}
