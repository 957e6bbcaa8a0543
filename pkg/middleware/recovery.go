package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/citydata/citydata-api/pkg/web"
)

// Recovery converts panics into a generic 500 without leaking internals.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered", appendLoggerFields(r.Context(),
						"panic", rec,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)...)
					web.WriteError(w, http.StatusInternalServerError, "Something went wrong!")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
