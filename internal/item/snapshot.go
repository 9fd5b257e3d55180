package item

import "time"

// Snapshot is one consistent point-in-time read of every stored record.
// Records reference items by id only.
type Snapshot struct {
	Items         []ItemRecord         `json:"items"          yaml:"items"`
	Coverings     []CoveringRecord     `json:"coverings"      yaml:"coverings"`
	TimeCoverings []TimeCoveringRecord `json:"time_coverings" yaml:"time_coverings"`
	Requirements  []RequirementRecord  `json:"requirements"   yaml:"requirements"`
}

// ItemRecord is a stored item.
type ItemRecord struct {
	ID       string     `json:"id"                 yaml:"id"`
	Summary  string     `json:"summary"            yaml:"summary"`
	Kind     Kind       `json:"kind"               yaml:"kind"`
	Created  time.Time  `json:"created"            yaml:"created"`
	Finished *time.Time `json:"finished,omitempty" yaml:"finished,omitempty"`
	Staging  Staging    `json:"staging"            yaml:"staging"`
}

// CoveringRecord is a stored covering edge: Parent is suppressed while Smaller
// is unfinished.
type CoveringRecord struct {
	ID      string `json:"id"      yaml:"id"`
	Smaller string `json:"smaller" yaml:"smaller"`
	Parent  string `json:"parent"  yaml:"parent"`
}

// TimeCoveringRecord suppresses Item while the current time is before Until.
type TimeCoveringRecord struct {
	ID    string    `json:"id"    yaml:"id"`
	Item  string    `json:"item"  yaml:"item"`
	Until time.Time `json:"until" yaml:"until"`
}

// RequirementRecord attaches a circumstance requirement to the item For.
type RequirementRecord struct {
	ID   string          `json:"id"   yaml:"id"`
	For  string          `json:"for"  yaml:"for"`
	Kind RequirementKind `json:"kind" yaml:"kind"`
}
