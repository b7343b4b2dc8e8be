package models

// VerifyRequest is the input to a gate verification.
type VerifyRequest struct {
	Code         string
	PIN          string
	HostResident string
	Method       VerificationMethod
	Location     string
}

// VerificationResult is the outcome of a verification. Denials are results,
// not errors: callers branch on Success.
type VerificationResult struct {
	Success      bool              `json:"success"`
	Blacklisted  bool              `json:"blacklisted"`
	Message      string            `json:"message"`
	Visitor      *VisitorRecord    `json:"visitor"`
	Log          *SecurityLogEntry `json:"log,omitempty"`
	Alert        *AlertEntry       `json:"alert,omitempty"`
	Announcement *Announcement     `json:"announcement,omitempty"`
}

// Result messages shown verbatim by dashboards.
const (
	MessageVerified          = "Visitor verified successfully"
	MessageBlacklisted       = "Visitor is blacklisted"
	MessageCheckedOut        = "Visitor checked out"
	MessageUpdated           = "Visitor updated"
	MessageVisitorNotFound   = "Visitor not found"
	MessageAlreadyCheckedOut = "Visitor already checked out"
)

// UpdateResult is the outcome of a checkout or field update. An unknown id
// or a repeated checkout is a normal failure result, not an error.
type UpdateResult struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Visitor *VisitorRecord    `json:"visitor,omitempty"`
	Log     *SecurityLogEntry `json:"log,omitempty"`
}

// EmergencyAlertRequest is raised by the panic-button console.
type EmergencyAlertRequest struct {
	Message  string
	Location string
	RaisedBy string
	Priority Priority
}

// EmergencyAlertResult reports the alert and its mirrored announcement.
type EmergencyAlertResult struct {
	Success      bool          `json:"success"`
	Alert        *AlertEntry   `json:"alert"`
	Announcement *Announcement `json:"announcement"`
}

// AnnouncementRequest posts a general broadcast.
type AnnouncementRequest struct {
	Title    string
	Body     string
	Author   string
	Priority Priority
}

// LogFilter narrows security log reads. Zero value returns everything.
type LogFilter struct {
	Type  LogType
	Limit int
}

// AlertFilter narrows alert feed reads. Zero value returns everything.
type AlertFilter struct {
	Type  AlertType
	Limit int
}
