package investment

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/citydata/citydata-api/internal/types"
	"github.com/citydata/citydata-api/pkg/web"
)

// Handler serves GET /api/v1/investment/recommendations.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	criteria := ParseCriteria(r.URL.Query())

	recommendations, err := h.svc.Recommend(r.Context(), criteria)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Investment recommendations error", slog.Any("error", err))
		web.WriteError(w, http.StatusInternalServerError, "Recommendations failed")
		return
	}
	if recommendations == nil {
		recommendations = []types.Recommendation{}
	}

	web.WriteJSON(w, http.StatusOK, map[string]any{
		"recommendations": recommendations,
		"criteria":        criteria,
		"meta": types.Meta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			APIVersion:  types.APIVersion,
		},
	})
}
