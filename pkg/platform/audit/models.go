package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose so sinks
// can route and retain them differently.
type EventCategory string

const (
	// CategorySecurity covers denials and emergencies. These feed alerting.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine gate traffic: grants, checkouts, edits.
	CategoryOperations EventCategory = "operations"
)

// Severity levels for security routing.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

type AuditEvent string

const (
	// Gate events
	EventVisitorVerified   AuditEvent = "visitor_verified"
	EventVisitorDenied     AuditEvent = "visitor_denied"
	EventVisitorCheckedOut AuditEvent = "visitor_checked_out"
	EventVisitorUpdated    AuditEvent = "visitor_updated"

	// Broadcast events
	EventEmergencyRaised    AuditEvent = "emergency_raised"
	EventAnnouncementPosted AuditEvent = "announcement_posted"
	EventAnnouncementRead   AuditEvent = "announcement_read"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventVisitorDenied:   CategorySecurity,
	EventEmergencyRaised: CategorySecurity,

	EventVisitorVerified:    CategoryOperations,
	EventVisitorCheckedOut:  CategoryOperations,
	EventVisitorUpdated:     CategoryOperations,
	EventAnnouncementPosted: CategoryOperations,
	EventAnnouncementRead:   CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Event is emitted from gate logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	Action    AuditEvent    `json:"action"`
	// Subject is the visitor code, alert id or announcement id acted upon.
	Subject   string   `json:"subject"`
	VisitorID string   `json:"visitor_id,omitempty"`
	Decision  string   `json:"decision,omitempty"`
	Reason    string   `json:"reason,omitempty"`
	Location  string   `json:"location,omitempty"`
	Method    string   `json:"method,omitempty"`
	Severity  Severity `json:"severity,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
	// ActorID is the gate operator or admin that triggered the action.
	ActorID  string `json:"actor_id,omitempty"`
	ClientIP string `json:"client_ip,omitempty"`
}

// Key is the partitioning key used by sinks that need one. Events for the
// same visitor stay ordered.
func (e Event) Key() string {
	if e.VisitorID != "" {
		return e.VisitorID
	}
	return e.Subject
}

// Store persists audit events one at a time.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// BatchStore is implemented by sinks that can persist several events in
// one round trip.
type BatchStore interface {
	Store
	AppendBatch(ctx context.Context, events []Event) error
}
