// Package service implements the gate: visitor verification against the
// blacklist, checkout and visitor updates, the security log and alert feed
// queries, and emergency broadcasts.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"estategate/internal/gate/metrics"
	"estategate/internal/gate/models"
	audit "estategate/pkg/platform/audit"
	"estategate/pkg/requestcontext"
)

var tracer = otel.Tracer("estategate/internal/gate/service")

type Blacklist interface {
	IsBlacklisted(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]string, error)
}

// Store is the gate state. Paired writes must be atomic.
type Store interface {
	RecordGrant(ctx context.Context, v *models.VisitorRecord, entry *models.SecurityLogEntry) error
	RecordDenial(ctx context.Context, alert *models.AlertEntry, entry *models.SecurityLogEntry, announcement *models.Announcement) error
	UpdateVisitor(ctx context.Context, id string, fn func(v *models.VisitorRecord) (*models.SecurityLogEntry, error)) (*models.VisitorRecord, error)
	RecordEmergency(ctx context.Context, alert *models.AlertEntry, announcement *models.Announcement) error
	AppendAnnouncement(ctx context.Context, announcement *models.Announcement) error
	MarkAnnouncementRead(ctx context.Context, id string) (*models.Announcement, error)

	FindVisitor(ctx context.Context, id string) (*models.VisitorRecord, error)
	ListVisitors(ctx context.Context) ([]*models.VisitorRecord, error)
	ListActiveVisitors(ctx context.Context) ([]*models.VisitorRecord, error)
	ListSecurityLog(ctx context.Context, filter models.LogFilter) ([]*models.SecurityLogEntry, error)
	ListAlerts(ctx context.Context, filter models.AlertFilter) ([]*models.AlertEntry, error)
	ListAnnouncements(ctx context.Context) ([]*models.Announcement, error)
	DaySummary(ctx context.Context, now time.Time) (models.DaySummary, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is the sole writer of gate state.
type Service struct {
	blacklist       Blacklist
	store           Store
	logger          *slog.Logger
	auditPublisher  AuditPublisher
	metrics         *metrics.Metrics
	newID           func() string
	latency         time.Duration
	defaultLocation string
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithIDGenerator replaces the uuid generator used for visitors, log
// entries, alerts and announcements.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithLatency delays every write by d before the state changes, the way the
// gate console simulates a slow backend. A cancelled context aborts the wait
// and nothing is written.
func WithLatency(d time.Duration) Option {
	return func(s *Service) {
		s.latency = d
	}
}

// WithDefaultLocation names the gate used when a request names none.
func WithDefaultLocation(location string) Option {
	return func(s *Service) {
		if location != "" {
			s.defaultLocation = location
		}
	}
}

// New constructs a Service.
func New(blacklist Blacklist, store Store, opts ...Option) *Service {
	s := &Service{
		blacklist:       blacklist,
		store:           store,
		newID:           uuid.NewString,
		defaultLocation: models.DefaultLocation,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) location(requested string) string {
	if requested != "" {
		return requested
	}
	return s.defaultLocation
}

func (s *Service) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// logAudit writes the business event to the structured log and hands it to
// the audit publisher. Publisher failures are logged and never change the
// outcome of the gate operation.
func (s *Service) logAudit(ctx context.Context, event audit.Event) {
	event.RequestID = requestcontext.RequestID(ctx)
	if event.ActorID == "" {
		event.ActorID = requestcontext.Operator(ctx)
	}
	event.ClientIP = requestcontext.ClientIP(ctx)
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event.Action),
			"event", event.Action,
			"log_type", "audit",
			"subject", event.Subject,
			"visitor_id", event.VisitorID,
			"decision", event.Decision,
			"location", event.Location,
			"operator", event.ActorID,
			"request_id", event.RequestID,
		)
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"event", event.Action,
			"error", err,
		)
	}
}
