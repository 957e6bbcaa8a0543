package city

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchFilters_Defaults(t *testing.T) {
	f := ParseSearchFilters(url.Values{}, defaultSearchLimit)

	assert.Equal(t, "population", f.SortBy)
	assert.Equal(t, 20, f.Limit)
	assert.Nil(t, f.MinPopulation)
	assert.Nil(t, f.State)
}

func TestParseSearchFilters_AllFilters(t *testing.T) {
	q := url.Values{
		"min_population":    {"500000"},
		"max_population":    {"2000000"},
		"max_crime_index":   {"45.5"},
		"min_school_rating": {"7"},
		"state":             {"tx"},
		"max_home_price":    {"450000"},
		"min_cap_rate":      {"0.05"},
		"sort_by":           {"cap_rate"},
		"limit":             {"5"},
	}
	f := ParseSearchFilters(q, defaultSearchLimit)

	require.NotNil(t, f.MinPopulation)
	assert.EqualValues(t, 500000, *f.MinPopulation)
	require.NotNil(t, f.MaxCrimeIndex)
	assert.InDelta(t, 45.5, *f.MaxCrimeIndex, 1e-9)
	require.NotNil(t, f.State)
	assert.Equal(t, "TX", *f.State, "state must be uppercased")
	assert.Equal(t, "cap_rate", f.SortBy)
	assert.Equal(t, 5, f.Limit)
}

func TestParseSearchFilters_NonNumericNeverRaises(t *testing.T) {
	// every numeric filter fed garbage must be silently dropped
	q := url.Values{
		"min_population":    {"a-lot"},
		"max_population":    {"1e"},
		"max_crime_index":   {"low"},
		"min_school_rating": {"good"},
		"max_home_price":    {"$400k"},
		"min_cap_rate":      {"8%"},
		"limit":             {"twenty"},
	}
	f := ParseSearchFilters(q, defaultSearchLimit)

	assert.Nil(t, f.MinPopulation)
	assert.Nil(t, f.MaxPopulation)
	assert.Nil(t, f.MaxCrimeIndex)
	assert.Nil(t, f.MinSchoolRating)
	assert.Nil(t, f.MaxHomePrice)
	assert.Nil(t, f.MinCapRate)
	assert.Equal(t, defaultSearchLimit, f.Limit)
}

func TestParseSearchFilters_StateCaseInsensitive(t *testing.T) {
	for _, raw := range []string{"tx", "Tx", "TX"} {
		f := ParseSearchFilters(url.Values{"state": {raw}}, defaultSearchLimit)
		require.NotNil(t, f.State)
		assert.Equal(t, "TX", *f.State)
	}
}

func TestParseSearchFilters_UnknownSortFallsBack(t *testing.T) {
	f := ParseSearchFilters(url.Values{"sort_by": {"bananas"}}, defaultSearchLimit)
	assert.Equal(t, "population", f.SortBy)
}

func TestBuildSearchQuery_PredicatesAndArgs(t *testing.T) {
	q := url.Values{
		"min_population": {"250000"},
		"state":          {"nc"},
		"min_cap_rate":   {"0.05"},
		"sort_by":        {"safety"},
	}
	f := ParseSearchFilters(q, defaultSearchLimit)

	sqlStr, args, err := buildSearchQuery(f)
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "c.population >= $1")
	assert.Contains(t, sqlStr, "c.state_code = $2")
	assert.Contains(t, sqlStr, "i.cap_rate >= $3")
	assert.Contains(t, sqlStr, "ORDER BY q.safety_score DESC, c.city_id ASC")
	assert.Contains(t, sqlStr, "LIMIT 20")
	assert.Equal(t, []any{int64(250000), "NC", 0.05}, args)

	// no user value may ever be spliced into the statement text
	assert.False(t, strings.Contains(sqlStr, "NC"))
}

func TestBuildSearchQuery_NoFilters(t *testing.T) {
	f := ParseSearchFilters(url.Values{}, defaultSearchLimit)

	sqlStr, args, err := buildSearchQuery(f)
	require.NoError(t, err)

	assert.NotContains(t, sqlStr, "WHERE")
	assert.Contains(t, sqlStr, "ORDER BY c.population DESC, c.city_id ASC")
	assert.Empty(t, args)
}
