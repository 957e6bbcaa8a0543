package main

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/citydata/citydata-api/internal/domain/auth"
	"github.com/citydata/citydata-api/internal/domain/usage"
	"github.com/citydata/citydata-api/pkg/middleware"
	"github.com/citydata/citydata-api/pkg/observability"
	"github.com/citydata/citydata-api/pkg/web"
)

//go:embed index.html
var landingPage []byte

var startedAt = time.Now()

// availableEndpoints is the fixed hint list returned on unknown routes.
var availableEndpoints = []string{
	"GET /health",
	"GET /api/v1/cities",
	"GET /api/v1/cities/:cityId",
	"GET /api/v1/cities/search",
	"GET /api/v1/investment/recommendations",
	"POST /api/v1/cities/compare",
}

// SetupRouter configures all routes and returns the HTTP handler
func SetupRouter(deps *Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID("X-Request-ID"))
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.Recovery(deps.Logger))

	registerUtilityRoutes(r, deps)

	// must be set before the /api/v1 group is mounted: chi copies the
	// parent's NotFound handler into a subrouter only when one is already
	// registered, otherwise misses under the group fall back to plain text
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		web.WriteJSON(w, http.StatusNotFound, map[string]any{
			"error":               "Endpoint not found",
			"available_endpoints": availableEndpoints,
			"demo_api_key":        auth.DemoToken,
		})
	})

	limiter := middleware.NewRateLimiter(
		deps.Config.Server.RateLimitPerMinute,
		deps.Config.Server.RateLimitBurst,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Handler)
		r.Use(observability.Metrics)
		r.Use(auth.RequireAPIKey(deps.AuthService))
		r.Use(usage.Recorder(deps.UsageRepo, deps.Logger))

		r.Get("/cities", deps.CityHandler.ListCities)
		r.Get("/cities/search", deps.CityHandler.SearchCities)
		r.Get("/cities/{cityID}", deps.CityHandler.GetCity)
		r.Post("/cities/compare", deps.CompareHandler.Compare)
		r.Get("/investment/recommendations", deps.InvestmentHandler.Recommendations)
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
	})

	return corsHandler.Handler(r)
}

// registerUtilityRoutes registers the landing page, health check, metrics
// and admin stats. None of these sit behind the API key guard.
func registerUtilityRoutes(r chi.Router, deps *Dependencies) {
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(landingPage)
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		web.WriteJSON(w, http.StatusOK, map[string]any{
			"status":           "healthy",
			"timestamp":        time.Now().UTC().Format(time.RFC3339),
			"version":          "1.0.0",
			"cities_available": deps.CityService.CitiesAvailable(req.Context()),
			"uptime":           time.Since(startedAt).Seconds(),
		})
	})

	r.Get("/admin/stats", deps.UsageHandler.Stats)

	if deps.Config.Observability.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
		deps.Logger.Info("registered metrics endpoint", "path", "/metrics")
	}
}
