package compare

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/citydata/citydata-api/internal/types"
	"github.com/citydata/citydata-api/pkg/web"
)

const usageExample = `{"city_ids": ["austin-tx", "denver-co", "nashville-tn"]}`

// Handler serves POST /api/v1/cities/compare.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type compareRequest struct {
	CityIDs []string `json:"city_ids"`
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeUsage(w)
		return
	}

	comparison, analysis, summary, err := h.svc.Compare(r.Context(), req.CityIDs)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrBadRequest):
			h.writeUsage(w)
		case errors.Is(err, types.ErrNotFound):
			web.WriteError(w, http.StatusNotFound, "No cities found")
		default:
			h.logger.ErrorContext(r.Context(), "City comparison error", slog.Any("error", err))
			web.WriteError(w, http.StatusInternalServerError, "Comparison failed")
		}
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]any{
		"comparison": comparison,
		"analysis":   analysis,
		"summary":    summary,
		"meta": types.Meta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			APIVersion:  types.APIVersion,
		},
	})
}

func (h *Handler) writeUsage(w http.ResponseWriter) {
	web.WriteJSON(w, http.StatusBadRequest, map[string]any{
		"error":   "Please provide at least 2 city IDs to compare",
		"example": usageExample,
	})
}
