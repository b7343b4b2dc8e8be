package service

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"estategate/internal/gate/metrics"
	"estategate/internal/gate/models"
	dErrors "estategate/pkg/domain-errors"
	audit "estategate/pkg/platform/audit"
	"estategate/pkg/requestcontext"
)

// Verify decides grant or deny for a presented visitor code.
//
// A blacklisted code is denied: a blacklist_attempt alert, an incident log
// entry and a mirrored announcement are written together and the result
// carries Success=false.
// Any other code is granted: a new active visitor and an entry log entry are
// written together. Denial is a result, not an error. Errors are reserved
// for a blank code (validation) and an unreachable blacklist backend
// (unavailable), in which case nothing is written.
func (s *Service) Verify(ctx context.Context, req models.VerifyRequest) (*models.VerificationResult, error) {
	start := time.Now()
	defer s.metrics.ObserveVerify(start)

	ctx, span := tracer.Start(ctx, "gate.Verify")
	defer span.End()

	if strings.TrimSpace(req.Code) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "code is required")
	}
	method, err := models.ParseVerificationMethod(string(req.Method))
	if err != nil {
		return nil, err
	}
	location := s.location(req.Location)
	span.SetAttributes(
		attribute.String("gate.method", string(method)),
		attribute.String("gate.location", location),
	)

	if err := s.simulateLatency(ctx); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "verification cancelled")
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, req.Code)
	if err != nil {
		s.metrics.RecordVerification(metrics.OutcomeUnavailable, string(method))
		span.RecordError(err)
		span.SetStatus(codes.Error, "blacklist unavailable")
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "blacklist lookup failed",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "blacklist unavailable")
	}

	now := requestcontext.Now(ctx)
	if blacklisted {
		return s.deny(ctx, span, req.Code, method, location, now)
	}
	return s.grant(ctx, span, req, method, location, now)
}

func (s *Service) deny(ctx context.Context, span trace.Span, code string, method models.VerificationMethod, location string, now time.Time) (*models.VerificationResult, error) {
	alert := models.NewBlacklistAlert(s.newID(), code, location, now)
	entry := models.NewIncidentLog(s.newID(), alert, method, location)
	entry.OperatorID = requestcontext.Operator(ctx)
	announcement := models.NewBlacklistAnnouncement(s.newID(), alert)

	if err := s.store.RecordDenial(ctx, alert, entry, announcement); err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record denial")
	}

	span.SetAttributes(attribute.String("gate.outcome", metrics.OutcomeDenied))
	s.metrics.RecordVerification(metrics.OutcomeDenied, string(method))
	s.logAudit(ctx, audit.Event{
		Action:    audit.EventVisitorDenied,
		Timestamp: now,
		Subject:   code,
		Decision:  metrics.OutcomeDenied,
		Reason:    "blacklisted",
		Location:  entry.Location,
		Method:    string(method),
		Severity:  audit.SeverityWarning,
	})

	return &models.VerificationResult{
		Success:      false,
		Blacklisted:  true,
		Message:      models.MessageBlacklisted,
		Log:          entry,
		Alert:        alert,
		Announcement: announcement,
	}, nil
}

func (s *Service) grant(ctx context.Context, span trace.Span, req models.VerifyRequest, method models.VerificationMethod, location string, now time.Time) (*models.VerificationResult, error) {
	v := models.NewVisitorRecord(s.newID(), req.Code, req.PIN, strings.TrimSpace(req.HostResident), method, now)
	entry := models.NewEntryLog(s.newID(), v, location)
	entry.OperatorID = requestcontext.Operator(ctx)

	if err := s.store.RecordGrant(ctx, v, entry); err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record entry")
	}

	span.SetAttributes(
		attribute.String("gate.outcome", metrics.OutcomeGranted),
		attribute.String("gate.visitor_id", v.ID),
	)
	s.metrics.RecordVerification(metrics.OutcomeGranted, string(method))
	s.metrics.VisitorEntered()
	s.logAudit(ctx, audit.Event{
		Action:    audit.EventVisitorVerified,
		Timestamp: now,
		Subject:   v.Code,
		VisitorID: v.ID,
		Decision:  metrics.OutcomeGranted,
		Location:  entry.Location,
		Method:    string(method),
		Severity:  audit.SeverityInfo,
	})

	return &models.VerificationResult{
		Success: true,
		Message: models.MessageVerified,
		Visitor: v,
		Log:     entry,
	}, nil
}
