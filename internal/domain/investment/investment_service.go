package investment

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"strconv"

	"github.com/citydata/citydata-api/internal/types"
)

const defaultRecommendationLimit = 10

// Service ranks eligible cities by their investment score.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ParseCriteria reads the recommendation knobs from the query string.
// Numeric coercion failures drop the criterion, mirroring search filters.
// risk_tolerance is accepted and echoed but does not alter the query.
func ParseCriteria(q url.Values) types.RecommendationCriteria {
	c := types.RecommendationCriteria{
		RiskTolerance: "medium",
		Limit:         defaultRecommendationLimit,
	}
	if v := q.Get("budget_min"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.BudgetMin = &n
		}
	}
	if v := q.Get("budget_max"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.BudgetMax = &n
		}
	}
	if v := q.Get("min_cap_rate"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.MinCapRate = &f
		}
	}
	if v := q.Get("risk_tolerance"); v != "" {
		c.RiskTolerance = v
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Limit = n
		}
	}
	return c
}

// Recommend scores every eligible row, ranks descending and caps at the
// requested limit. The sort is stable so equal scores keep fetch order.
func (s *Service) Recommend(ctx context.Context, criteria types.RecommendationCriteria) ([]types.Recommendation, error) {
	eligible, err := s.repo.FetchEligible(ctx, criteria)
	if err != nil {
		return nil, err
	}

	recommendations := make([]types.Recommendation, 0, len(eligible))
	for _, row := range eligible {
		recommendations = append(recommendations, types.Recommendation{
			InvestmentRow:   row,
			InvestmentScore: Score(row),
			Highlights:      Highlights(row),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].InvestmentScore > recommendations[j].InvestmentScore
	})

	if len(recommendations) > criteria.Limit {
		recommendations = recommendations[:criteria.Limit]
	}
	return recommendations, nil
}
