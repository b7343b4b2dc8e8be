package models

import "time"

// DefaultLocation is used for log entries when no gate is named.
const DefaultLocation = "Main Gate"

// LogType classifies security log entries.
type LogType string

const (
	LogTypeEntry    LogType = "entry"
	LogTypeExit     LogType = "exit"
	LogTypeIncident LogType = "incident"
	LogTypeSystem   LogType = "system"
)

// ParseLogType validates a wire value. Empty is allowed and means "any".
func ParseLogType(s string) (LogType, bool) {
	switch LogType(s) {
	case "", LogTypeEntry, LogTypeExit, LogTypeIncident, LogTypeSystem:
		return LogType(s), true
	default:
		return "", false
	}
}

// Actions recorded on the log.
const (
	ActionEntryGranted = "Entry granted"
	ActionDeniedEntry  = "Denied entry"
	ActionCheckedOut   = "Checked out"
)

// SecurityLogEntry is an append-only audit record. Entries are never
// mutated or deleted; Seq is assigned by the store on insert and increases
// strictly with insertion order.
type SecurityLogEntry struct {
	ID         string             `json:"id"`
	Seq        int64              `json:"seq"`
	Type       LogType            `json:"type"`
	Timestamp  time.Time          `json:"timestamp"`
	ActorCode  string             `json:"actor_code"`
	ActorName  string             `json:"actor_name"`
	Action     string             `json:"action"`
	Method     VerificationMethod `json:"method,omitempty"`
	Location   string             `json:"location"`
	VisitorID  string             `json:"visitor_id,omitempty"`
	OperatorID string             `json:"operator_id,omitempty"`
}

// NewEntryLog records a granted entry for v.
func NewEntryLog(id string, v *VisitorRecord, location string) *SecurityLogEntry {
	return &SecurityLogEntry{
		ID:        id,
		Type:      LogTypeEntry,
		Timestamp: v.EntryTimestamp,
		ActorCode: v.Code,
		ActorName: v.Name,
		Action:    ActionEntryGranted,
		Method:    v.VerificationMethod,
		Location:  locationOrDefault(location),
		VisitorID: v.ID,
	}
}

// NewExitLog records a checkout for v.
func NewExitLog(id string, v *VisitorRecord, location string, now time.Time) *SecurityLogEntry {
	return &SecurityLogEntry{
		ID:        id,
		Type:      LogTypeExit,
		Timestamp: now,
		ActorCode: v.Code,
		ActorName: v.Name,
		Action:    ActionCheckedOut,
		Location:  locationOrDefault(location),
		VisitorID: v.ID,
	}
}

// NewIncidentLog records a denied blacklisted code. It shares timestamp and
// code with the paired blacklist_attempt alert.
func NewIncidentLog(id string, alert *AlertEntry, method VerificationMethod, location string) *SecurityLogEntry {
	return &SecurityLogEntry{
		ID:        id,
		Type:      LogTypeIncident,
		Timestamp: alert.Timestamp,
		ActorCode: alert.VisitorCode,
		ActorName: DisplayNameForCode(alert.VisitorCode),
		Action:    ActionDeniedEntry,
		Method:    method,
		Location:  locationOrDefault(location),
	}
}

func locationOrDefault(location string) string {
	if location == "" {
		return DefaultLocation
	}
	return location
}
