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

// Checkout moves a visitor to checked-out, applying any extra updates in
// the same step. It is UpdateVisitor with CheckOut appended.
func (s *Service) Checkout(ctx context.Context, id string, updates ...models.VisitorUpdate) (*models.UpdateResult, error) {
	if !models.HasCheckOut(updates) {
		updates = append(updates, models.CheckOut{})
	}
	return s.UpdateVisitor(ctx, id, updates...)
}

// UpdateVisitor applies tagged updates atomically. An exit log entry is
// appended only when the record actually moves from active to checked-out.
//
// An unknown id and a repeated checkout are failure results, not errors,
// and neither writes anything.
func (s *Service) UpdateVisitor(ctx context.Context, id string, updates ...models.VisitorUpdate) (*models.UpdateResult, error) {
	ctx, span := tracer.Start(ctx, "gate.UpdateVisitor")
	defer span.End()
	span.SetAttributes(attribute.String("gate.visitor_id", id))

	if len(updates) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one update is required")
	}
	if err := s.simulateLatency(ctx); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "update cancelled")
	}

	now := requestcontext.Now(ctx)
	operator := requestcontext.Operator(ctx)
	location := s.defaultLocation

	var exitLog *models.SecurityLogEntry
	updated, err := s.store.UpdateVisitor(ctx, id, func(v *models.VisitorRecord) (*models.SecurityLogEntry, error) {
		checkedOut, err := models.ApplyUpdates(v, updates, now)
		if err != nil {
			return nil, err
		}
		if !checkedOut {
			return nil, nil
		}
		exitLog = models.NewExitLog(s.newID(), v, location, now)
		exitLog.OperatorID = operator
		return exitLog, nil
	})
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return &models.UpdateResult{Success: false, Message: models.MessageVisitorNotFound}, nil
	case dErrors.HasCode(err, dErrors.CodeInvariantViolation):
		return &models.UpdateResult{Success: false, Message: models.MessageAlreadyCheckedOut}, nil
	case dErrors.HasCode(err, dErrors.CodeValidation):
		return nil, err
	case err != nil:
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update visitor")
	}

	if exitLog != nil {
		s.metrics.IncCheckouts()
		s.metrics.VisitorLeft()
		s.logAudit(ctx, audit.Event{
			Action:    audit.EventVisitorCheckedOut,
			Timestamp: now,
			Subject:   updated.Code,
			VisitorID: updated.ID,
			Location:  exitLog.Location,
			Reason:    updateKinds(updates),
		})
		return &models.UpdateResult{
			Success: true,
			Message: models.MessageCheckedOut,
			Visitor: updated,
			Log:     exitLog,
		}, nil
	}

	s.logAudit(ctx, audit.Event{
		Action:    audit.EventVisitorUpdated,
		Timestamp: now,
		Subject:   updated.Code,
		VisitorID: updated.ID,
		Reason:    updateKinds(updates),
	})
	return &models.UpdateResult{
		Success: true,
		Message: models.MessageUpdated,
		Visitor: updated,
	}, nil
}

func (s *Service) GetVisitor(ctx context.Context, id string) (*models.VisitorRecord, error) {
	v, err := s.store.FindVisitor(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "visitor not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load visitor")
	}
	return v, nil
}

// ListActiveVisitors returns exactly the on-premises visitors, most recently
// verified first.
func (s *Service) ListActiveVisitors(ctx context.Context) ([]*models.VisitorRecord, error) {
	visitors, err := s.store.ListActiveVisitors(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list active visitors")
	}
	return visitors, nil
}

// ListVisitors returns the whole directory, checked-out visitors included.
func (s *Service) ListVisitors(ctx context.Context) ([]*models.VisitorRecord, error) {
	visitors, err := s.store.ListVisitors(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list visitors")
	}
	return visitors, nil
}

// ListSecurityLog returns log entries newest first.
func (s *Service) ListSecurityLog(ctx context.Context, filter models.LogFilter) ([]*models.SecurityLogEntry, error) {
	if filter.Limit < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "limit must not be negative")
	}
	if _, ok := models.ParseLogType(string(filter.Type)); !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "type must be one of: entry, exit, incident, system")
	}
	entries, err := s.store.ListSecurityLog(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list security log")
	}
	return entries, nil
}

// ListAlerts returns alerts newest first.
func (s *Service) ListAlerts(ctx context.Context, filter models.AlertFilter) ([]*models.AlertEntry, error) {
	if filter.Limit < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "limit must not be negative")
	}
	if _, ok := models.ParseAlertType(string(filter.Type)); !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "type must be one of: blacklist_attempt, emergency")
	}
	alerts, err := s.store.ListAlerts(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list alerts")
	}
	return alerts, nil
}

// TodaySummary returns the dashboard counters for the request's calendar day.
func (s *Service) TodaySummary(ctx context.Context) (models.DaySummary, error) {
	summary, err := s.store.DaySummary(ctx, requestcontext.Now(ctx))
	if err != nil {
		return models.DaySummary{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to summarize day")
	}
	return summary, nil
}

func updateKinds(updates []models.VisitorUpdate) string {
	kinds := make([]string, 0, len(updates))
	for _, u := range updates {
		if u != nil {
			kinds = append(kinds, u.Kind())
		}
	}
	return strings.Join(kinds, ",")
}
