package usage

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/citydata/citydata-api/internal/domain/auth"
	"github.com/citydata/citydata-api/internal/types"
)

const recordTimeout = 5 * time.Second

// Recorder logs one api_usage row per authenticated, non-demo request.
// The write happens after the response on a detached context: it must not
// delay the caller, and a failed insert is logged and swallowed.
func Recorder(repo Repository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			caller, ok := auth.CallerFromContext(r.Context())
			if !ok || caller.Demo {
				return
			}

			rec := types.UsageRecord{
				CustomerID: caller.CustomerID,
				APIKeyID:   caller.KeyID,
				Endpoint:   r.URL.Path,
				Method:     r.Method,
				StatusCode: ww.Status(),
			}

			detached := context.WithoutCancel(r.Context())
			go func() {
				ctx, cancel := context.WithTimeout(detached, recordTimeout)
				defer cancel()
				if err := repo.Record(ctx, rec); err != nil {
					logger.ErrorContext(ctx, "Usage logging error", slog.Any("error", err))
				}
			}()
		})
	}
}
