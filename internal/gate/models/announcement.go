package models

import "time"

// AnnouncementType distinguishes ordinary broadcasts from mirrored emergencies.
type AnnouncementType string

const (
	AnnouncementTypeGeneral   AnnouncementType = "general"
	AnnouncementTypeEmergency AnnouncementType = "emergency"
)

// Announcement is a broadcast message. Only Read ever changes after insert.
type Announcement struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Type      AnnouncementType `json:"type"`
	Priority  Priority         `json:"priority"`
	CreatedAt time.Time        `json:"created_at"`
	Author    string           `json:"author,omitempty"`
	AlertID   string           `json:"alert_id,omitempty"`
	Read      bool             `json:"read"`
}

// NewEmergencyAnnouncement mirrors an emergency alert into the broadcast
// store, escalating priority to urgent.
func NewEmergencyAnnouncement(id string, alert *AlertEntry) *Announcement {
	return &Announcement{
		ID:        id,
		Title:     "Emergency at " + alert.Location,
		Body:      alert.Message,
		Type:      AnnouncementTypeEmergency,
		Priority:  PriorityUrgent,
		CreatedAt: alert.Timestamp,
		Author:    alert.RaisedBy,
		AlertID:   alert.ID,
	}
}

// NewBlacklistAnnouncement mirrors a blacklist_attempt alert into the
// broadcast store so residents see denied entries. Priority follows the alert.
func NewBlacklistAnnouncement(id string, alert *AlertEntry) *Announcement {
	return &Announcement{
		ID:        id,
		Title:     "Security alert at " + alert.Location,
		Body:      alert.Message,
		Type:      AnnouncementTypeEmergency,
		Priority:  alert.Priority,
		CreatedAt: alert.Timestamp,
		AlertID:   alert.ID,
	}
}

// NewAnnouncement builds a general broadcast.
func NewAnnouncement(id, title, body, author string, priority Priority, now time.Time) *Announcement {
	if priority == "" {
		priority = PriorityMedium
	}
	return &Announcement{
		ID:        id,
		Title:     title,
		Body:      body,
		Type:      AnnouncementTypeGeneral,
		Priority:  priority,
		CreatedAt: now,
		Author:    author,
	}
}
