package models

import (
	"strings"
	"time"

	dErrors "estategate/pkg/domain-errors"
)

// VisitorUpdate is one command applied to a visitor record. The set of
// variants is closed: only the types in this file implement it, so an
// update can never write arbitrary fields or revive a checked-out visitor.
type VisitorUpdate interface {
	apply(v *VisitorRecord, now time.Time) error
	Kind() string
}

// CheckOut moves an active visitor to checked-out.
type CheckOut struct{}

// Relabel changes the display name.
type Relabel struct {
	Name string
}

// ChangePurpose changes the recorded purpose of visit.
type ChangePurpose struct {
	Purpose string
}

// ReassignHost changes the resident being visited.
type ReassignHost struct {
	HostResident string
}

func (CheckOut) Kind() string      { return "check_out" }
func (Relabel) Kind() string       { return "relabel" }
func (ChangePurpose) Kind() string { return "change_purpose" }
func (ReassignHost) Kind() string  { return "reassign_host" }

func (CheckOut) apply(v *VisitorRecord, now time.Time) error {
	if err := v.CanCheckOut(); err != nil {
		return err
	}
	v.ApplyCheckOut(now)
	return nil
}

func (u Relabel) apply(v *VisitorRecord, _ time.Time) error {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return dErrors.New(dErrors.CodeValidation, "name cannot be empty")
	}
	v.Name = name
	return nil
}

func (u ChangePurpose) apply(v *VisitorRecord, _ time.Time) error {
	purpose := strings.TrimSpace(u.Purpose)
	if purpose == "" {
		return dErrors.New(dErrors.CodeValidation, "purpose cannot be empty")
	}
	v.Purpose = purpose
	return nil
}

func (u ReassignHost) apply(v *VisitorRecord, _ time.Time) error {
	host := strings.TrimSpace(u.HostResident)
	if host == "" {
		return dErrors.New(dErrors.CodeValidation, "host_resident cannot be empty")
	}
	v.HostResident = host
	return nil
}

// ApplyUpdates applies updates in order to v. It reports whether the record
// transitioned to checked-out. On error v may be partially modified, so
// callers apply to a copy and discard it on failure.
func ApplyUpdates(v *VisitorRecord, updates []VisitorUpdate, now time.Time) (checkedOut bool, err error) {
	if len(updates) == 0 {
		return false, dErrors.New(dErrors.CodeValidation, "at least one update is required")
	}
	for _, u := range updates {
		if u == nil {
			return false, dErrors.New(dErrors.CodeValidation, "update cannot be nil")
		}
		wasActive := v.IsActive()
		if err := u.apply(v, now); err != nil {
			return false, err
		}
		if wasActive && !v.IsActive() {
			checkedOut = true
		}
	}
	return checkedOut, nil
}

// HasCheckOut reports whether updates contain a CheckOut command.
func HasCheckOut(updates []VisitorUpdate) bool {
	for _, u := range updates {
		if _, ok := u.(CheckOut); ok {
			return true
		}
	}
	return false
}
