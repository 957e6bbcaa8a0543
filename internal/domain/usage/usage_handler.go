package usage

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/citydata/citydata-api/internal/types"
	"github.com/citydata/citydata-api/pkg/web"
)

// Handler serves GET /admin/stats.
type Handler struct {
	repo   Repository
	logger *slog.Logger
}

func NewHandler(repo Repository, logger *slog.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// Stats reports the 30-day aggregate. A store failure still answers 200
// with zeroed stats and an error marker so dashboards keep rendering.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Stats error", slog.Any("error", err))
		web.WriteJSON(w, http.StatusOK, map[string]any{
			"usage_stats": types.UsageStats{},
			"error":       "Stats unavailable",
		})
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]any{
		"usage_stats":  stats,
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	})
}
