package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/citydata/citydata-api/internal/types"
	"github.com/citydata/citydata-api/pkg/web"
)

type contextKey string

const callerKey contextKey = "caller"

// CallerFromContext returns the identity attached by RequireAPIKey.
func CallerFromContext(ctx context.Context) (*types.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(*types.Caller)
	return caller, ok
}

// WithCaller attaches a caller identity; exported for handler tests.
func WithCaller(ctx context.Context, caller *types.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// RequireAPIKey guards a route subtree with bearer-key validation.
func RequireAPIKey(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				web.WriteError(w, http.StatusUnauthorized, "Missing or invalid API key")
				return
			}

			caller, err := svc.ValidateKey(r.Context(), strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				if errors.Is(err, types.ErrUnauthenticated) {
					web.WriteError(w, http.StatusUnauthorized, "Invalid API key")
					return
				}
				web.WriteError(w, http.StatusInternalServerError, "Authentication error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}
