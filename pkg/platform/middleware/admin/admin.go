// Package admin guards operator-only routes: emergency alerts, broadcasts
// and the blacklist view.
package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	dErrors "estategate/pkg/domain-errors"
	"estategate/pkg/platform/httputil"
	"estategate/pkg/requestcontext"
)

// HeaderAdminToken carries the shared console token.
const HeaderAdminToken = "X-Admin-Token"

// RequireAdminToken admits requests whose X-Admin-Token equals expectedToken.
// It is a console gate, not user authentication. An empty expectedToken
// rejects every request.
func RequireAdminToken(expectedToken string, logger *slog.Logger) func(http.Handler) http.Handler {
	want := []byte(expectedToken)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(HeaderAdminToken))
			if len(want) > 0 && subtle.ConstantTimeCompare(got, want) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			logger.WarnContext(ctx, "admin token mismatch",
				"request_id", requestcontext.RequestID(ctx),
				"client_ip", requestcontext.ClientIP(ctx),
				"path", r.URL.Path,
				"token_present", len(got) > 0,
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "admin token required"))
		})
	}
}
