package item

import "time"

// circumstanceRule is one independent precondition. All rules must hold.
type circumstanceRule func(it *Item, now time.Time, focusTime bool) bool

// circumstanceRules is evaluated in order by [CircumstancesMet]. A new
// requirement kind gets its own rule here.
var circumstanceRules = []circumstanceRule{
	notSundayMet,
	focusTimeMet,
}

// CircumstancesMet reports whether the item's preconditions hold at now with
// focus time active or not.
func CircumstancesMet(it *Item, now time.Time, focusTime bool) bool {
	for _, rule := range circumstanceRules {
		if !rule(it, now, focusTime) {
			return false
		}
	}

	return true
}

// notSundayMet fails only for items that require it on a Sunday, taken in now's
// location.
func notSundayMet(it *Item, now time.Time, _ bool) bool {
	return !it.HasRequirement(RequirementNotSunday) || now.Weekday() != time.Sunday
}

// focusTimeMet partitions items: during focus time only focus-time items are
// shown, outside of it only the others.
func focusTimeMet(it *Item, _ time.Time, focusTime bool) bool {
	return it.RequiresFocusTime() == focusTime
}
