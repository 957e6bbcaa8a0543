package compare

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/citydata/citydata-api/internal/types"
)

// Service resolves a set of city IDs into side-by-side rows plus the
// per-dimension extremes.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// NormalizeIDs lowercases, trims and dedupes the requested IDs, keeping
// first-seen order.
func NormalizeIDs(cityIDs []string) []string {
	seen := make(map[string]struct{}, len(cityIDs))
	normalized := make([]string, 0, len(cityIDs))
	for _, id := range cityIDs {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		normalized = append(normalized, id)
	}
	return normalized
}

// Compare fetches the requested cities and derives the analysis and summary.
// Fewer than two distinct IDs is ErrBadRequest; an empty result set is
// ErrNotFound.
func (s *Service) Compare(ctx context.Context, cityIDs []string) ([]types.CompareRow, types.ComparisonAnalysis, types.ComparisonSummary, error) {
	ids := NormalizeIDs(cityIDs)
	if len(ids) < 2 {
		return nil, types.ComparisonAnalysis{}, types.ComparisonSummary{}, types.ErrBadRequest
	}

	rows, err := s.repo.FetchByIDs(ctx, ids)
	if err != nil {
		return nil, types.ComparisonAnalysis{}, types.ComparisonSummary{}, fmt.Errorf("failed to compare cities: %w", err)
	}
	if len(rows) == 0 {
		return nil, types.ComparisonAnalysis{}, types.ComparisonSummary{}, types.ErrNotFound
	}

	return rows, Analyze(rows), Summarize(rows), nil
}

// Analyze reduces the rows to their per-dimension extremes. Reductions run
// in store order and the first row wins ties; a missing home price counts
// as +Inf for affordability, every other missing value counts as 0.
func Analyze(rows []types.CompareRow) types.ComparisonAnalysis {
	mostAffordable := &rows[0]
	safest := &rows[0]
	bestSchools := &rows[0]
	bestInvestment := &rows[0]

	for i := 1; i < len(rows); i++ {
		row := &rows[i]
		if priceOrInf(row.MedianHomePrice) < priceOrInf(mostAffordable.MedianHomePrice) {
			mostAffordable = row
		}
		if deref(row.SafetyScore) > deref(safest.SafetyScore) {
			safest = row
		}
		if deref(row.SchoolRating) > deref(bestSchools.SchoolRating) {
			bestSchools = row
		}
		if deref(row.CapRate) > deref(bestInvestment.CapRate) {
			bestInvestment = row
		}
	}

	return types.ComparisonAnalysis{
		MostAffordable: mostAffordable,
		Safest:         safest,
		BestSchools:    bestSchools,
		BestInvestment: bestInvestment,
	}
}

// Summarize computes the count and price range. For range purposes a missing
// price counts as 0, so one unpriced city pins the lowest bound to 0.
func Summarize(rows []types.CompareRow) types.ComparisonSummary {
	lowest := priceOrZero(rows[0].MedianHomePrice)
	highest := lowest
	for _, row := range rows[1:] {
		p := priceOrZero(row.MedianHomePrice)
		if p < lowest {
			lowest = p
		}
		if p > highest {
			highest = p
		}
	}
	return types.ComparisonSummary{
		CitiesCompared: len(rows),
		PriceRange:     types.PriceRange{Lowest: lowest, Highest: highest},
	}
}

func priceOrInf(p *int64) float64 {
	if p == nil {
		return math.Inf(1)
	}
	return float64(*p)
}

func priceOrZero(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
