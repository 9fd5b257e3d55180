// Package store persists items, covering edges, time coverings and
// requirements in SQLite and reads them back as one consistent snapshot.
package store

import (
	"fmt"

	"github.com/google/uuid"
)

// newID generates a time-ordered UUIDv7 so ids sort by creation and the short
// display id can be derived from the random bits.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuidv7: %w", err)
	}

	return id.String(), nil
}
