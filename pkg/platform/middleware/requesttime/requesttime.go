// Package requesttime pins one "now" per HTTP request so the visitor record,
// its log entry and its audit event all carry the same timestamp.
package requesttime

import (
	"net/http"
	"time"

	"estategate/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request
// and stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
