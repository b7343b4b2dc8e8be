package handler

import "estategate/internal/gate/models"

// VisitorListResponse wraps visitor listings. Visitors is never null.
type VisitorListResponse struct {
	Visitors []*models.VisitorRecord `json:"visitors"`
	Count    int                     `json:"count"`
}

func NewVisitorListResponse(visitors []*models.VisitorRecord) VisitorListResponse {
	if visitors == nil {
		visitors = []*models.VisitorRecord{}
	}
	return VisitorListResponse{Visitors: visitors, Count: len(visitors)}
}

type SecurityLogResponse struct {
	Entries []*models.SecurityLogEntry `json:"entries"`
	Count   int                        `json:"count"`
}

type AlertListResponse struct {
	Alerts []*models.AlertEntry `json:"alerts"`
	Count  int                  `json:"count"`
}

type AnnouncementListResponse struct {
	Announcements []*models.Announcement `json:"announcements"`
	Count         int                    `json:"count"`
}

type BlacklistResponse struct {
	Codes []string `json:"codes"`
	Count int      `json:"count"`
}
