package service

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"estategate/internal/gate/models"
	dErrors "estategate/pkg/domain-errors"
	audit "estategate/pkg/platform/audit"
	"estategate/pkg/platform/sentinel"
	"estategate/pkg/requestcontext"
)

// RaiseEmergencyAlert appends an emergency alert and mirrors it into the
// announcement store as an urgent emergency broadcast, in one step.
// Emergencies are not written to the security log.
func (s *Service) RaiseEmergencyAlert(ctx context.Context, req models.EmergencyAlertRequest) (*models.EmergencyAlertResult, error) {
	ctx, span := tracer.Start(ctx, "gate.RaiseEmergencyAlert")
	defer span.End()

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "message is required")
	}
	if _, err := models.ParsePriority(string(req.Priority), models.PriorityCritical); err != nil {
		return nil, err
	}
	req.Location = s.location(strings.TrimSpace(req.Location))
	if req.RaisedBy == "" {
		req.RaisedBy = requestcontext.Operator(ctx)
	}
	if err := s.simulateLatency(ctx); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "emergency alert cancelled")
	}

	alert := models.NewEmergencyAlert(s.newID(), req, requestcontext.Now(ctx))
	announcement := models.NewEmergencyAnnouncement(s.newID(), alert)
	if err := s.store.RecordEmergency(ctx, alert, announcement); err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record emergency alert")
	}

	span.SetAttributes(
		attribute.String("gate.alert_id", alert.ID),
		attribute.String("gate.priority", string(alert.Priority)),
	)
	s.metrics.IncEmergencyAlerts()
	if s.logger != nil {
		s.logger.WarnContext(ctx, "emergency alert raised",
			"alert_id", alert.ID,
			"location", alert.Location,
			"priority", alert.Priority,
		)
	}
	s.logAudit(ctx, audit.Event{
		Action:    audit.EventEmergencyRaised,
		Timestamp: alert.Timestamp,
		Subject:   alert.ID,
		Location:  alert.Location,
		Reason:    alert.Message,
		ActorID:   alert.RaisedBy,
		Severity:  audit.SeverityCritical,
	})

	return &models.EmergencyAlertResult{
		Success:      true,
		Alert:        alert,
		Announcement: announcement,
	}, nil
}

// PostAnnouncement publishes a general broadcast.
func (s *Service) PostAnnouncement(ctx context.Context, req models.AnnouncementRequest) (*models.Announcement, error) {
	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if body == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "body is required")
	}
	priority, err := models.ParsePriority(string(req.Priority), models.PriorityMedium)
	if err != nil {
		return nil, err
	}
	author := req.Author
	if author == "" {
		author = requestcontext.Operator(ctx)
	}

	a := models.NewAnnouncement(s.newID(), title, body, author, priority, requestcontext.Now(ctx))
	if err := s.store.AppendAnnouncement(ctx, a); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to post announcement")
	}
	s.logAudit(ctx, audit.Event{
		Action:    audit.EventAnnouncementPosted,
		Timestamp: a.CreatedAt,
		Subject:   a.ID,
		ActorID:   a.Author,
	})
	return a, nil
}

func (s *Service) ListAnnouncements(ctx context.Context) ([]*models.Announcement, error) {
	list, err := s.store.ListAnnouncements(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list announcements")
	}
	return list, nil
}

// MarkAnnouncementRead sets the read flag on one announcement.
func (s *Service) MarkAnnouncementRead(ctx context.Context, id string) (*models.Announcement, error) {
	a, err := s.store.MarkAnnouncementRead(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "announcement not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark announcement read")
	}
	s.logAudit(ctx, audit.Event{
		Action:  audit.EventAnnouncementRead,
		Subject: a.ID,
	})
	return a, nil
}

// ListBlacklist returns the configured denied codes.
func (s *Service) ListBlacklist(ctx context.Context) ([]string, error) {
	codes, err := s.blacklist.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "blacklist unavailable")
	}
	return codes, nil
}
