package handler_test

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estategate/internal/gate/blacklist"
	"estategate/internal/gate/handler"
	"estategate/internal/gate/service"
	"estategate/internal/gate/store"
	"estategate/internal/platform/ratelimit"
	"estategate/pkg/platform/middleware/admin"
	"estategate/pkg/platform/middleware/metadata"
	"estategate/pkg/platform/middleware/request"
	"estategate/pkg/platform/middleware/requesttime"
	"estategate/pkg/testutil"
)

const testAdminToken = "s3cret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(
		blacklist.NewStatic([]string{"BLOCK123", "BLOCK456"}),
		store.NewInMemory(),
		service.WithLogger(logger),
	)
	h := handler.New(svc, logger)

	clientIP, err := metadata.NewResolver(nil)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(clientIP.Middleware)
	h.Register(r)
	r.Group(func(ar chi.Router) {
		ar.Use(admin.RequireAdminToken(testAdminToken, logger))
		h.RegisterAdmin(ar)
	})
	return r
}

func do(t *testing.T, router http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rr := testutil.DoRequest(router, req)
	if rr.Body.Len() == 0 {
		return rr, nil
	}
	return rr, testutil.UnmarshalResponse[map[string]any](t, rr)
}

func TestGateRouter_VisitFlow(t *testing.T) {
	router := newTestRouter(t)

	w, body := do(t, router, testutil.AsOperator(testutil.NewJSONRequest(t, http.MethodPost, "/v1/visitors/verify",
		`{"code":"GUEST42","pin":"9999","host_resident":"res-4B","method":"qr"}`), "guard-7"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(request.HeaderRequestID))
	assert.Equal(t, true, body["success"])
	visitor := body["visitor"].(map[string]any)
	id := visitor["id"].(string)
	assert.Equal(t, "Visitor ST42", visitor["name"])

	w, body = do(t, router, testutil.NewJSONRequest(t, http.MethodGet, "/v1/visitors/active", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["count"])

	w, body = do(t, router, testutil.NewJSONRequest(t, http.MethodPatch, "/v1/visitors/"+id,
		`{"updates":[{"kind":"relabel","name":"Ada Courier"}]}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Ada Courier", body["visitor"].(map[string]any)["name"])

	w, body = do(t, router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/visitors/"+id+"/checkout", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	w, body = do(t, router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/visitors/"+id+"/checkout", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Visitor already checked out", body["message"])

	w, body = do(t, router, testutil.NewJSONRequest(t, http.MethodGet, "/v1/security-log?type=exit", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["count"])

	w, body = do(t, router, testutil.NewJSONRequest(t, http.MethodGet, "/v1/stats/today", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["active_visitors"])
}

func TestGateRouter_BlacklistedVisitor(t *testing.T) {
	router := newTestRouter(t)

	w, body := do(t, router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/visitors/verify", `{"code":"BLOCK123"}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, true, body["blacklisted"])

	w, body = do(t, router, testutil.NewJSONRequest(t, http.MethodGet, "/v1/alerts?type=blacklist_attempt", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["count"])

	w, body = do(t, router, testutil.NewJSONRequest(t, http.MethodGet, "/v1/visitors", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["count"])

	w, body = do(t, router, testutil.NewJSONRequest(t, http.MethodGet, "/v1/announcements", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body["announcements"], 1)
	assert.Equal(t, "emergency", body["announcements"].([]any)[0].(map[string]any)["type"])
}

func TestGateRouter_Validation(t *testing.T) {
	router := newTestRouter(t)

	w, body := do(t, router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/visitors/verify", `{"code":""}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", body["error"])

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/visitors/verify", `{"code":`))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/v1/visitors/unknown", nil))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")

	w, body = do(t, router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/visitors/unknown/checkout", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Visitor not found", body["message"])
}

func TestGateRouter_AdminRoutes(t *testing.T) {
	router := newTestRouter(t)

	t.Run("missing token", func(t *testing.T) {
		w, body := do(t, router, testutil.NewJSONRequest(t, http.MethodGet, "/v1/blacklist", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "unauthorized", body["error"])
	})

	t.Run("blacklist listing", func(t *testing.T) {
		w, body := do(t, router, testutil.AsAdmin(testutil.NewJSONRequest(t, http.MethodGet, "/v1/blacklist", nil), testAdminToken))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []any{"BLOCK123", "BLOCK456"}, body["codes"])
	})

	t.Run("emergency is mirrored as an announcement", func(t *testing.T) {
		w, body := do(t, router, testutil.AsAdmin(testutil.NewJSONRequest(t, http.MethodPost, "/v1/alerts/emergency",
			map[string]string{"message": "Gas leak", "location": "Block A"}), testAdminToken))
		require.Equal(t, http.StatusCreated, w.Code)
		alert := body["alert"].(map[string]any)
		assert.Equal(t, "critical", alert["priority"])

		w, body = do(t, router, testutil.NewJSONRequest(t, http.MethodGet, "/v1/announcements", nil))
		require.Equal(t, http.StatusOK, w.Code)
		list := body["announcements"].([]any)
		require.Len(t, list, 1)
		ann := list[0].(map[string]any)
		assert.Equal(t, "Emergency at Block A", ann["title"])
		assert.Equal(t, alert["id"], ann["alert_id"])

		w, body = do(t, router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/announcements/"+ann["id"].(string)+"/read", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["read"])
	})
}

func TestGateRouter_VerifyRateLimit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(blacklist.NewStatic(nil), store.NewInMemory(), service.WithLogger(logger))
	limiter := ratelimit.NewMiddleware(ratelimit.NewSlidingWindow(2, time.Minute), logger, nil)
	h := handler.New(svc, logger, handler.WithVerifyMiddleware(limiter.PerClientIP))

	clientIP, err := metadata.NewResolver(nil)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(clientIP.Middleware)
	h.Register(r)

	attempt := 0
	verify := func() *httptest.ResponseRecorder {
		attempt++
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/visitors/verify", `{"code":"GUEST42"}`)
		req.RemoteAddr = "198.51.100.9:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", attempt))
		return testutil.DoRequest(r, req)
	}

	assert.Equal(t, http.StatusOK, verify().Code)
	assert.Equal(t, http.StatusOK, verify().Code)
	for range 5 {
		rr := verify()
		testutil.AssertStatusAndError(t, rr, http.StatusTooManyRequests, "rate_limit_exceeded")
		assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	}

	w, body := do(t, r, testutil.NewJSONRequest(t, http.MethodGet, "/v1/visitors/active", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, body["count"], "rejected attempts never reached the service")
}

func TestGateRouter_VerifyRateLimitBehindTrustedProxy(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(blacklist.NewStatic(nil), store.NewInMemory(), service.WithLogger(logger))
	limiter := ratelimit.NewMiddleware(ratelimit.NewSlidingWindow(1, time.Minute), logger, nil)
	h := handler.New(svc, logger, handler.WithVerifyMiddleware(limiter.PerClientIP))
	resolver, err := metadata.NewResolver([]string{"10.1.0.0/16"})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(resolver.Middleware)
	h.Register(r)

	verify := func(client string) int {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/visitors/verify", `{"code":"GUEST42"}`)
		req.RemoteAddr = "10.1.0.2:40000"
		req.Header.Set("X-Forwarded-For", client)
		return testutil.DoRequest(r, req).Code
	}

	assert.Equal(t, http.StatusOK, verify("203.0.113.7"))
	assert.Equal(t, http.StatusTooManyRequests, verify("203.0.113.7"))
	assert.Equal(t, http.StatusOK, verify("203.0.113.8"), "each client behind the proxy has its own window")
}
