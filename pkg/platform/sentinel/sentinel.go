package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and registries return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These describe the state of a resource, not input validation:
// - ErrNotFound: entity does not exist in the store
// - ErrInvalidState: entity is in the wrong state for the requested operation
// - ErrUnavailable: backing service (blacklist backend, audit sink) cannot be reached
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
