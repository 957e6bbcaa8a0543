package middleware

import (
	"net/http"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/citydata/citydata-api/pkg/web"
)

const rateLimitMessage = "Rate limit exceeded. Upgrade your plan for higher limits."

// RateLimiter hands out one token bucket per credential. Buckets live in an
// expiring cache so idle callers do not accumulate.
type RateLimiter struct {
	perMinute int
	burst     int
	buckets   *cache.Cache
}

// NewRateLimiter builds a limiter allowing perMinute requests with the given
// burst per distinct credential (or remote address when unauthenticated).
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	return &RateLimiter{
		perMinute: perMinute,
		burst:     burst,
		buckets:   cache.New(10*time.Minute, 15*time.Minute),
	}
}

// Handler is the admission-control middleware. It runs before authentication;
// rejected requests never reach the handlers.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiterFor(clientKey(r)).Allow() {
			web.WriteError(w, http.StatusTooManyRequests, rateLimitMessage)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	if v, ok := rl.buckets.Get(key); ok {
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rate.Limit(float64(rl.perMinute)/60.0), rl.burst)
	rl.buckets.SetDefault(key, limiter)
	return limiter
}

// clientKey prefers the bearer credential so one customer shares one bucket
// across addresses; anonymous traffic is bucketed per remote host.
func clientKey(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return "key:" + strings.TrimPrefix(auth, "Bearer ")
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > 0 {
		host = host[:i]
	}
	return "ip:" + host
}
