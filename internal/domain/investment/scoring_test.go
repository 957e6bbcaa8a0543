package investment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/citydata/citydata-api/internal/types"
)

func ptr[T any](v T) *T { return &v }

func TestScore_WorkedExample(t *testing.T) {
	// 0.08*100*5 + 8*3 + 7*2 + 0.02*100*10 + 20 = 40+24+14+20+20
	row := types.InvestmentRow{
		CapRate:          ptr(0.08),
		SafetyScore:      ptr(8.0),
		SchoolRating:     ptr(7.0),
		JobGrowthRate1Yr: ptr(0.02),
		GrowthPotential:  ptr("high"),
	}
	assert.Equal(t, 118.0, Score(row))
}

func TestScore_Deterministic(t *testing.T) {
	row := types.InvestmentRow{
		CapRate:          ptr(0.056),
		SafetyScore:      ptr(5.8),
		SchoolRating:     ptr(6.2),
		JobGrowthRate1Yr: ptr(0.031),
		GrowthPotential:  ptr("medium"),
	}
	assert.Equal(t, Score(row), Score(row))
}

func TestScore_NullsCountAsZero(t *testing.T) {
	// only the floor growth bonus remains
	assert.Equal(t, 5.0, Score(types.InvestmentRow{}))
}

func TestScore_RoundsToOneDecimal(t *testing.T) {
	row := types.InvestmentRow{
		CapRate:         ptr(0.0533),
		GrowthPotential: ptr("low"),
	}
	// 26.65 + 5 = 31.65 -> 31.7
	assert.Equal(t, 31.7, Score(row))
}

func TestGrowthBonus(t *testing.T) {
	assert.Equal(t, 20.0, growthBonus(ptr("high")))
	assert.Equal(t, 10.0, growthBonus(ptr("medium")))
	assert.Equal(t, 5.0, growthBonus(ptr("low")))
	assert.Equal(t, 5.0, growthBonus(ptr("speculative")))
	assert.Equal(t, 5.0, growthBonus(nil))
}

func TestHighlights_FixedOrder(t *testing.T) {
	row := types.InvestmentRow{
		CapRate:         ptr(0.061),
		GrowthPotential: ptr("high"),
		SafetyScore:     ptr(7.1),
		SchoolRating:    ptr(6.5),
	}
	assert.Equal(t, []string{
		"6.1% cap rate",
		"high growth potential",
		"Safety score: 7.1/10",
		"School rating: 6.5/10",
	}, Highlights(row))
}

func TestHighlights_NullFields(t *testing.T) {
	row := types.InvestmentRow{CapRate: ptr(0.05)}
	h := Highlights(row)
	assert.Equal(t, "5.0% cap rate", h[0])
	assert.Equal(t, "unknown growth potential", h[1])
	assert.Equal(t, "Safety score: null/10", h[2])
	assert.Equal(t, "School rating: null/10", h[3])
}
