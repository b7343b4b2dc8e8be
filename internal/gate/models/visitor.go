package models

import (
	"time"

	dErrors "estategate/pkg/domain-errors"
)

// DefaultPIN is substituted when the caller presents no PIN. It is a demo
// affordance carried over from the gate console and is NOT a security
// control: PINs are recorded for audit but never checked against a
// per-pass secret.
const DefaultPIN = "0000"

// UnassignedHost is recorded when the caller does not name the resident being visited.
const UnassignedHost = "unassigned"

// DefaultPurpose is the purpose stamped on every visitor admitted through verification.
const DefaultPurpose = "Verified Entry"

// VisitorStatus is the lifecycle state of an admitted visitor.
type VisitorStatus string

const (
	VisitorStatusActive     VisitorStatus = "active"
	VisitorStatusCheckedOut VisitorStatus = "checked-out"
)

// CanTransitionTo reports whether the lifecycle allows moving to next.
// The only transition is active → checked-out.
func (s VisitorStatus) CanTransitionTo(next VisitorStatus) bool {
	return s == VisitorStatusActive && next == VisitorStatusCheckedOut
}

// VerificationMethod records how the visitor code reached the gate.
type VerificationMethod string

const (
	MethodQR     VerificationMethod = "qr"
	MethodManual VerificationMethod = "manual"
)

// ParseVerificationMethod maps the wire value to a method; empty means manual entry.
func ParseVerificationMethod(s string) (VerificationMethod, error) {
	switch VerificationMethod(s) {
	case "", MethodManual:
		return MethodManual, nil
	case MethodQR:
		return MethodQR, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "method must be one of: qr, manual")
	}
}

// VisitorRecord is a visitor admitted through the gate.
//
// Invariants:
//   - exactly one record per successful verification
//   - ID is immutable after creation
//   - Status moves active → checked-out only, never back
//   - records are never removed from the directory
type VisitorRecord struct {
	ID                 string             `json:"id"`
	Code               string             `json:"code"`
	PIN                string             `json:"pin"`
	Name               string             `json:"name"`
	HostResident       string             `json:"host_resident"`
	Purpose            string             `json:"purpose"`
	EntryTimestamp     time.Time          `json:"entry_timestamp"`
	ExitTimestamp      *time.Time         `json:"exit_timestamp,omitempty"`
	Status             VisitorStatus      `json:"status"`
	VerificationMethod VerificationMethod `json:"verification_method"`
}

// NewVisitorRecord builds the record created on a granted verification.
func NewVisitorRecord(id, code, pin, host string, method VerificationMethod, now time.Time) *VisitorRecord {
	if pin == "" {
		pin = DefaultPIN
	}
	if host == "" {
		host = UnassignedHost
	}
	if method == "" {
		method = MethodManual
	}
	return &VisitorRecord{
		ID:                 id,
		Code:               code,
		PIN:                pin,
		Name:               DisplayNameForCode(code),
		HostResident:       host,
		Purpose:            DefaultPurpose,
		EntryTimestamp:     now,
		Status:             VisitorStatusActive,
		VerificationMethod: method,
	}
}

// DisplayNameForCode derives the cosmetic display name shown on dashboards:
// a fixed prefix plus the last four characters of the code.
func DisplayNameForCode(code string) string {
	r := []rune(code)
	if len(r) > 4 {
		r = r[len(r)-4:]
	}
	return "Visitor " + string(r)
}

func (v *VisitorRecord) IsActive() bool {
	return v.Status == VisitorStatusActive
}

// CanCheckOut checks whether the visitor may leave the premises.
func (v *VisitorRecord) CanCheckOut() error {
	if !v.Status.CanTransitionTo(VisitorStatusCheckedOut) {
		return dErrors.New(dErrors.CodeInvariantViolation, "visitor already checked out")
	}
	return nil
}

// ApplyCheckOut marks the visitor as gone. Call CanCheckOut first.
func (v *VisitorRecord) ApplyCheckOut(now time.Time) {
	v.Status = VisitorStatusCheckedOut
	exit := now
	v.ExitTimestamp = &exit
}

// Clone returns a deep copy so callers never alias directory state.
func (v *VisitorRecord) Clone() *VisitorRecord {
	if v == nil {
		return nil
	}
	c := *v
	if v.ExitTimestamp != nil {
		t := *v.ExitTimestamp
		c.ExitTimestamp = &t
	}
	return &c
}
