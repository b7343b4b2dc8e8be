package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"estategate/internal/gate/models"
	dErrors "estategate/pkg/domain-errors"
	"estategate/pkg/platform/httputil"
	"estategate/pkg/requestcontext"
)

// Service defines the gate operations exposed over HTTP.
type Service interface {
	Verify(ctx context.Context, req models.VerifyRequest) (*models.VerificationResult, error)
	Checkout(ctx context.Context, id string, updates ...models.VisitorUpdate) (*models.UpdateResult, error)
	UpdateVisitor(ctx context.Context, id string, updates ...models.VisitorUpdate) (*models.UpdateResult, error)
	GetVisitor(ctx context.Context, id string) (*models.VisitorRecord, error)
	ListActiveVisitors(ctx context.Context) ([]*models.VisitorRecord, error)
	ListVisitors(ctx context.Context) ([]*models.VisitorRecord, error)
	ListSecurityLog(ctx context.Context, filter models.LogFilter) ([]*models.SecurityLogEntry, error)
	ListAlerts(ctx context.Context, filter models.AlertFilter) ([]*models.AlertEntry, error)
	TodaySummary(ctx context.Context) (models.DaySummary, error)
	RaiseEmergencyAlert(ctx context.Context, req models.EmergencyAlertRequest) (*models.EmergencyAlertResult, error)
	PostAnnouncement(ctx context.Context, req models.AnnouncementRequest) (*models.Announcement, error)
	ListAnnouncements(ctx context.Context) ([]*models.Announcement, error)
	MarkAnnouncementRead(ctx context.Context, id string) (*models.Announcement, error)
	ListBlacklist(ctx context.Context) ([]string, error)
}

// Handler wires gate endpoints to the gate service.
type Handler struct {
	service      Service
	logger       *slog.Logger
	verifyGuards []func(http.Handler) http.Handler
}

// Option configures a Handler.
type Option func(*Handler)

// WithVerifyMiddleware guards only the verification endpoint, e.g. with a
// per-client rate limit.
func WithVerifyMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.verifyGuards = append(h.verifyGuards, mw...)
	}
}

// New constructs a gate handler with its dependencies.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{service: service, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the gate console endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.With(h.verifyGuards...).Post("/v1/visitors/verify", h.handleVerify)
	r.Get("/v1/visitors/active", h.handleListActive)
	r.Get("/v1/visitors", h.handleListVisitors)
	r.Get("/v1/visitors/{id}", h.handleGetVisitor)
	r.Post("/v1/visitors/{id}/checkout", h.handleCheckout)
	r.Patch("/v1/visitors/{id}", h.handleUpdateVisitor)
	r.Get("/v1/security-log", h.handleListSecurityLog)
	r.Get("/v1/alerts", h.handleListAlerts)
	r.Get("/v1/announcements", h.handleListAnnouncements)
	r.Post("/v1/announcements/{id}/read", h.handleMarkRead)
	r.Get("/v1/stats/today", h.handleTodaySummary)
}

// RegisterAdmin mounts admin-only endpoints. The caller is responsible for
// guarding r with the admin token middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/v1/alerts/emergency", h.handleRaiseEmergency)
	r.Post("/v1/announcements", h.handlePostAnnouncement)
	r.Get("/v1/blacklist", h.handleListBlacklist)
}

// handleVerify handles POST /v1/visitors/verify. Denials are returned with
// 200 and success=false; callers branch on the body.
func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[VerifyVisitorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Verify(ctx, req.ToModel())
	if err != nil {
		h.logger.ErrorContext(ctx, "visitor verification failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "visitor verification completed",
		"request_id", requestID,
		"success", result.Success,
		"blacklisted", result.Blacklisted,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id := chi.URLParam(r, "id")

	req, ok := httputil.DecodeAndPrepare[CheckoutRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Checkout(ctx, id, req.ToModel()...)
	if err != nil {
		h.logger.ErrorContext(ctx, "visitor checkout failed",
			"request_id", requestID,
			"visitor_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "visitor checkout completed",
		"request_id", requestID,
		"visitor_id", id,
		"success", result.Success,
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleUpdateVisitor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id := chi.URLParam(r, "id")

	req, ok := httputil.DecodeAndPrepare[UpdateVisitorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.UpdateVisitor(ctx, id, req.ToModel()...)
	if err != nil {
		h.logger.ErrorContext(ctx, "visitor update failed",
			"request_id", requestID,
			"visitor_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetVisitor(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.GetVisitor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleListActive(w http.ResponseWriter, r *http.Request) {
	visitors, err := h.service.ListActiveVisitors(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NewVisitorListResponse(visitors))
}

func (h *Handler) handleListVisitors(w http.ResponseWriter, r *http.Request) {
	visitors, err := h.service.ListVisitors(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NewVisitorListResponse(visitors))
}

// handleListSecurityLog handles GET /v1/security-log?type=&limit=.
func (h *Handler) handleListSecurityLog(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	logType, ok := models.ParseLogType(r.URL.Query().Get("type"))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "type must be one of: entry, exit, incident, system"))
		return
	}

	entries, err := h.service.ListSecurityLog(r.Context(), models.LogFilter{Type: logType, Limit: limit})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SecurityLogResponse{Entries: entries, Count: len(entries)})
}

// handleListAlerts handles GET /v1/alerts?type=&limit=.
func (h *Handler) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	alertType, ok := models.ParseAlertType(r.URL.Query().Get("type"))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "type must be one of: blacklist_attempt, emergency"))
		return
	}

	alerts, err := h.service.ListAlerts(r.Context(), models.AlertFilter{Type: alertType, Limit: limit})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AlertListResponse{Alerts: alerts, Count: len(alerts)})
}

func (h *Handler) handleTodaySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.TodaySummary(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleRaiseEmergency(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EmergencyAlertRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.RaiseEmergencyAlert(ctx, req.ToModel())
	if err != nil {
		h.logger.ErrorContext(ctx, "emergency alert failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) handlePostAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AnnouncementRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	a, err := h.service.PostAnnouncement(ctx, req.ToModel())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListAnnouncements(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AnnouncementListResponse{Announcements: list, Count: len(list)})
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.MarkAnnouncementRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) handleListBlacklist(w http.ResponseWriter, r *http.Request) {
	codes, err := h.service.ListBlacklist(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "blacklist listing failed",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BlacklistResponse{Codes: codes, Count: len(codes)})
}

const maxListLimit = 500

func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > maxListLimit {
		return 0, dErrors.New(dErrors.CodeValidation, "limit must be an integer between 0 and 500")
	}
	return n, nil
}
