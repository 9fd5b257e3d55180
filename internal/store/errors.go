package store

import "errors"

// Error variables for store operations.
var (
	ErrItemNotFound       = errors.New("item not found")
	ErrAlreadyFinished    = errors.New("item is already finished")
	ErrCannotCoverSelf    = errors.New("item cannot cover itself")
	ErrAlreadyCovered     = errors.New("covering already exists")
	ErrCoveringNotFound   = errors.New("covering not found")
	ErrSummaryEmpty       = errors.New("summary cannot be empty")
	ErrInvalidKind        = errors.New("invalid item kind")
	ErrInvalidRequirement = errors.New("invalid requirement kind")
	ErrInvalidStaging     = errors.New("invalid staging")
	ErrLocked             = errors.New("database is locked by another process")
	ErrSchemaVersion      = errors.New("unsupported database schema version")
	ErrNotOpen            = errors.New("store is not open")
)
