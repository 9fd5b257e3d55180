// Package item resolves a stored snapshot of items, covering edges, time
// coverings and circumstance requirements into the set of next steps.
//
// Everything in this package is a pure function of its inputs. A [View] built
// from one [Snapshot] is immutable and safe for concurrent use.
package item

import (
	"fmt"
	"time"
)

// Kind classifies an item. It is fixed when the item is captured.
type Kind string

// Item kinds.
const (
	KindQuestion   Kind = "question"
	KindToDo       Kind = "todo"
	KindHope       Kind = "hope"
	KindMotivation Kind = "motivation"
)

// Kinds lists every valid kind in display order.
var Kinds = []Kind{KindToDo, KindHope, KindMotivation, KindQuestion}

// ParseKind parses a kind name. "to-do" is accepted as an alias for "todo".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "todo", "to-do":
		return KindToDo, nil
	case "hope", "question", "motivation":
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Item is the working view of one stored item.
//
// Requirements holds only the requirements that target this item.
type Item struct {
	ID           string
	Summary      string
	Finished     *time.Time
	Kind         Kind
	Staging      Staging
	Requirements []Requirement
}

// IsFinished reports whether the item has a finished timestamp.
func (it *Item) IsFinished() bool {
	return it.Finished != nil
}

// Is reports whether the item has the given kind.
func (it *Item) Is(kind Kind) bool {
	return it.Kind == kind
}

// HasRequirement reports whether any of the item's requirements has kind rk.
func (it *Item) HasRequirement(rk RequirementKind) bool {
	for _, r := range it.Requirements {
		if r.Kind == rk {
			return true
		}
	}

	return false
}

// RequiresFocusTime reports whether the item should only be done during focus time.
func (it *Item) RequiresFocusTime() bool {
	return it.HasRequirement(RequirementFocusTime)
}

// ShortID returns the display id for the item.
func (it *Item) ShortID() string {
	return ShortID(it.ID)
}

// RequirementKind names a circumstance that must hold for an item to be actionable.
type RequirementKind string

// Requirement kinds.
const (
	RequirementNotSunday RequirementKind = "not-sunday"
	RequirementFocusTime RequirementKind = "focus-time"
)

// ParseRequirementKind parses a requirement kind name.
func ParseRequirementKind(s string) (RequirementKind, error) {
	switch rk := RequirementKind(s); rk {
	case RequirementNotSunday, RequirementFocusTime:
		return rk, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRequirement, s)
	}
}

// Requirement is a resolved circumstance requirement.
type Requirement struct {
	ID   string
	Kind RequirementKind
}
