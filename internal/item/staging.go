package item

import (
	"fmt"
	"time"
)

// StagingKind is the readiness classification the presentation layer uses to
// order next steps. It plays no part in actionability.
type StagingKind string

// Staging kinds.
const (
	StagingNotSet           StagingKind = "not-set"
	StagingMentallyResident StagingKind = "mentally-resident"
	StagingOnDeck           StagingKind = "on-deck"
	StagingIntention        StagingKind = "intention"
	StagingReleased         StagingKind = "released"
)

// StagingKinds lists every staging kind in menu order.
var StagingKinds = []StagingKind{
	StagingOnDeck,
	StagingMentallyResident,
	StagingIntention,
	StagingReleased,
	StagingNotSet,
}

// ParseStagingKind parses a staging name.
func ParseStagingKind(s string) (StagingKind, error) {
	switch k := StagingKind(s); k {
	case StagingNotSet, StagingMentallyResident, StagingOnDeck, StagingIntention, StagingReleased:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStaging, s)
	}
}

// Staging is an item's staging classification.
//
// EnterList and Lap are only meaningful for mentally-resident and on-deck:
// the item enters the list at EnterList and should be revisited every Lap.
type Staging struct {
	Kind      StagingKind   `json:"kind"                 yaml:"kind"`
	EnterList time.Time     `json:"enter_list,omitzero"  yaml:"enter_list,omitempty"`
	Lap       time.Duration `json:"lap,omitempty"        yaml:"lap,omitempty"`
}

// Normalized returns s with an empty kind replaced by not-set and timing
// dropped for kinds that carry none.
func (s Staging) Normalized() Staging {
	switch s.Kind {
	case StagingMentallyResident, StagingOnDeck:
		return s
	case "":
		return Staging{Kind: StagingNotSet}
	default:
		return Staging{Kind: s.Kind}
	}
}

// HasTiming reports whether the kind carries enter-list and lap values.
func (k StagingKind) HasTiming() bool {
	return k == StagingMentallyResident || k == StagingOnDeck
}

// Rank orders staging kinds for display: mentally resident first, released last.
// Timed kinds whose enter-list time is still in the future sort with not-set.
func (s Staging) Rank(now time.Time) int {
	s = s.Normalized()

	switch s.Kind {
	case StagingMentallyResident:
		if now.Before(s.EnterList) {
			return 3
		}

		return 0
	case StagingOnDeck:
		if now.Before(s.EnterList) {
			return 3
		}

		return 1
	case StagingIntention:
		return 2
	case StagingReleased:
		return 4
	default:
		return 3
	}
}

func (s Staging) String() string {
	s = s.Normalized()
	if !s.Kind.HasTiming() {
		return string(s.Kind)
	}

	return fmt.Sprintf("%s (enter %s, lap %s)", s.Kind, s.EnterList.Format(time.DateTime), s.Lap)
}
