package investment

import (
	"fmt"
	"math"
	"strconv"

	"github.com/citydata/citydata-api/internal/types"
)

// Weights of the investment score. Cap rate and job growth are fractions,
// hence the *100 rescale before weighting.
const (
	capRateWeight   = 5
	safetyWeight    = 3
	schoolWeight    = 2
	jobGrowthWeight = 10
)

// Score computes the investment score for one row. Pure and deterministic;
// null inputs count as zero before weighting.
func Score(row types.InvestmentRow) float64 {
	raw := deref(row.CapRate)*100*capRateWeight +
		deref(row.SafetyScore)*safetyWeight +
		deref(row.SchoolRating)*schoolWeight +
		deref(row.JobGrowthRate1Yr)*100*jobGrowthWeight +
		growthBonus(row.GrowthPotential)
	return math.Round(raw*10) / 10
}

// growthBonus maps the categorical outlook to its score contribution.
// Anything but high/medium, including null, earns the floor bonus.
func growthBonus(potential *string) float64 {
	if potential == nil {
		return 5
	}
	switch *potential {
	case "high":
		return 20
	case "medium":
		return 10
	default:
		return 5
	}
}

// Highlights renders the four fixed summary strings in a fixed order:
// cap rate, growth potential, safety, schools.
func Highlights(row types.InvestmentRow) []string {
	growth := "unknown"
	if row.GrowthPotential != nil {
		growth = *row.GrowthPotential
	}
	return []string{
		fmt.Sprintf("%.1f%% cap rate", deref(row.CapRate)*100),
		fmt.Sprintf("%s growth potential", growth),
		fmt.Sprintf("Safety score: %s/10", formatScore(row.SafetyScore)),
		fmt.Sprintf("School rating: %s/10", formatScore(row.SchoolRating)),
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// formatScore renders a nullable rating. Null stays the literal "null":
// highlights surface missing data instead of masking it as a zero rating.
func formatScore(v *float64) string {
	if v == nil {
		return "null"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
