package item

import (
	"errors"
	"fmt"
	"strings"
)

// Error variables for resolution.
var (
	ErrNotFound             = errors.New("item not found")
	ErrAmbiguousID          = errors.New("ambiguous item id")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
	ErrCycle                = errors.New("cycle in covering graph")
	ErrInvalidKind          = errors.New("invalid item kind")
	ErrInvalidRequirement   = errors.New("invalid requirement kind")
	ErrInvalidStaging       = errors.New("invalid staging")
)

// Record names used in [ReferentialIntegrityError].
const (
	RecordItem         = "item"
	RecordCovering     = "covering"
	RecordTimeCovering = "time covering"
	RecordRequirement  = "requirement"
)

// ReferentialIntegrityError reports a stored record that references an id
// absent from the item snapshot it was read with. It means the snapshot is torn;
// nothing resolved from it can be trusted.
type ReferentialIntegrityError struct {
	Record    string // Record is the kind of record holding the reference.
	RecordID  string // RecordID identifies the offending record.
	MissingID string // MissingID is the item id that could not be found.
}

func (e *ReferentialIntegrityError) Error() string {
	if e.Record == RecordItem {
		return fmt.Sprintf("%s: duplicate item id %s", ErrReferentialIntegrity, e.MissingID)
	}

	return fmt.Sprintf("%s: %s %s references unknown item %s", ErrReferentialIntegrity, e.Record, e.RecordID, e.MissingID)
}

// Is makes errors.Is(err, ErrReferentialIntegrity) hold.
func (e *ReferentialIntegrityError) Is(target error) bool {
	return target == ErrReferentialIntegrity
}

// CycleError reports an ancestor traversal that came back to an item already
// on its path. Path starts at the traversal root and ends with the repeated id.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	short := make([]string, len(e.Path))
	for i, id := range e.Path {
		short[i] = ShortID(id)
	}

	return fmt.Sprintf("%s: %s", ErrCycle, strings.Join(short, " -> "))
}

// Is makes errors.Is(err, ErrCycle) hold.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}
