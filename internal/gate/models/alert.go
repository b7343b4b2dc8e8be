package models

import (
	"time"

	dErrors "estategate/pkg/domain-errors"
)

// AlertType classifies operator-facing alerts.
type AlertType string

const (
	AlertTypeBlacklistAttempt AlertType = "blacklist_attempt"
	AlertTypeEmergency        AlertType = "emergency"
)

// ParseAlertType validates a wire value. Empty is allowed and means "any".
func ParseAlertType(s string) (AlertType, bool) {
	switch AlertType(s) {
	case "", AlertTypeBlacklistAttempt, AlertTypeEmergency:
		return AlertType(s), true
	default:
		return "", false
	}
}

// Priority is shared by alerts and announcements.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
	PriorityUrgent   Priority = "urgent"
)

// ParsePriority validates a wire value, returning def when s is empty.
func ParsePriority(s string, def Priority) (Priority, error) {
	switch Priority(s) {
	case "":
		return def, nil
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical, PriorityUrgent:
		return Priority(s), nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "priority must be one of: low, medium, high, critical, urgent")
	}
}

// AlertEntry is an immutable operator-facing alert. Every blacklist_attempt
// alert is written together with an incident entry on the security log.
type AlertEntry struct {
	ID          string    `json:"id"`
	Seq         int64     `json:"seq"`
	Type        AlertType `json:"type"`
	VisitorCode string    `json:"visitor_code,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Message     string    `json:"message"`
	Priority    Priority  `json:"priority"`
	Location    string    `json:"location,omitempty"`
	RaisedBy    string    `json:"raised_by,omitempty"`
}

// NewBlacklistAlert builds the alert raised when a blacklisted code is presented.
func NewBlacklistAlert(id, code, location string, now time.Time) *AlertEntry {
	return &AlertEntry{
		ID:          id,
		Type:        AlertTypeBlacklistAttempt,
		VisitorCode: code,
		Timestamp:   now,
		Message:     "Blacklisted visitor code " + code + " attempted entry",
		Priority:    PriorityHigh,
		Location:    locationOrDefault(location),
	}
}

// NewEmergencyAlert builds an admin-raised emergency alert.
func NewEmergencyAlert(id string, req EmergencyAlertRequest, now time.Time) *AlertEntry {
	priority := req.Priority
	if priority == "" {
		priority = PriorityCritical
	}
	return &AlertEntry{
		ID:        id,
		Type:      AlertTypeEmergency,
		Timestamp: now,
		Message:   req.Message,
		Priority:  priority,
		Location:  locationOrDefault(req.Location),
		RaisedBy:  req.RaisedBy,
	}
}
