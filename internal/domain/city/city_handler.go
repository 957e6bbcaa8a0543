package city

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/citydata/citydata-api/internal/types"
	"github.com/citydata/citydata-api/pkg/web"
)

const (
	defaultSearchLimit = 20
	defaultListLimit   = 100
)

// availableCitiesHint is the static sample offered on a city miss. It is a
// hand-maintained constant, not derived from the store.
var availableCitiesHint = []string{"austin-tx", "denver-co", "nashville-tn"}

var dataSources = []string{"US Census", "FBI Crime Data", "BLS", "Local APIs"}

// Handler serves the city endpoints.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type cityDetailResponse struct {
	types.CityDetail
	Meta types.Meta `json:"meta"`
}

// GetCity handles GET /api/v1/cities/{cityID}.
func (h *Handler) GetCity(w http.ResponseWriter, r *http.Request) {
	cityID := chi.URLParam(r, "cityID")

	detail, err := h.svc.GetCity(r.Context(), cityID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			web.WriteJSON(w, http.StatusNotFound, map[string]any{
				"error":            "City not found",
				"suggestion":       "Try searching with /api/v1/cities/search",
				"available_cities": availableCitiesHint,
			})
			return
		}
		h.logger.ErrorContext(r.Context(), "City lookup error", slog.Any("error", err))
		web.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	web.WriteJSON(w, http.StatusOK, cityDetailResponse{
		CityDetail: *detail,
		Meta: types.Meta{
			LastUpdated: time.Now().UTC().Format(time.RFC3339),
			DataSources: dataSources,
			APIVersion:  types.APIVersion,
		},
	})
}

// ListCities handles GET /api/v1/cities.
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := parseInt(r.URL.Query().Get("limit")); v != nil && *v > 0 {
		limit = int(*v)
	}

	cities, err := h.svc.ListCities(r.Context(), limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Cities list error", slog.Any("error", err))
		web.WriteError(w, http.StatusInternalServerError, "Failed to fetch cities")
		return
	}
	if cities == nil {
		cities = []types.CitySummary{}
	}

	web.WriteJSON(w, http.StatusOK, map[string]any{
		"cities":      cities,
		"total_count": len(cities),
		"meta": types.Meta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			APIVersion:  types.APIVersion,
		},
	})
}

// SearchCities handles GET /api/v1/cities/search.
func (h *Handler) SearchCities(w http.ResponseWriter, r *http.Request) {
	filters := ParseSearchFilters(r.URL.Query(), defaultSearchLimit)

	results, err := h.svc.SearchCities(r.Context(), filters)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Search error", slog.Any("error", err))
		web.WriteError(w, http.StatusInternalServerError, "Search failed")
		return
	}
	if results == nil {
		results = []types.SearchRow{}
	}

	web.WriteJSON(w, http.StatusOK, map[string]any{
		"results":         results,
		"total_count":     len(results),
		"filters_applied": filters,
		"meta": types.Meta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			APIVersion:  types.APIVersion,
		},
	})
}
