package city

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/citydata/citydata-api/internal/types"
)

// ParseSearchFilters turns raw query-string values into the typed filter
// set. A value that fails to parse as its target numeric type is treated as
// absent, never an error. The returned struct is what gets echoed back to
// the caller as filters_applied.
func ParseSearchFilters(q url.Values, defaultLimit int) types.SearchFilters {
	f := types.SearchFilters{
		SortBy: "population",
		Limit:  defaultLimit,
	}

	if v := parseInt(q.Get("min_population")); v != nil {
		f.MinPopulation = v
	}
	if v := parseInt(q.Get("max_population")); v != nil {
		f.MaxPopulation = v
	}
	if v := parseFloat(q.Get("max_crime_index")); v != nil {
		f.MaxCrimeIndex = v
	}
	if v := parseFloat(q.Get("min_school_rating")); v != nil {
		f.MinSchoolRating = v
	}
	if s := q.Get("state"); s != "" {
		state := strings.ToUpper(s)
		f.State = &state
	}
	if v := parseInt(q.Get("max_home_price")); v != nil {
		f.MaxHomePrice = v
	}
	if v := parseFloat(q.Get("min_cap_rate")); v != nil {
		f.MinCapRate = v
	}

	if sortBy := q.Get("sort_by"); sortBy != "" {
		if _, ok := sortOptions[sortBy]; ok {
			f.SortBy = sortBy
		}
	}
	if limit := parseInt(q.Get("limit")); limit != nil && *limit > 0 {
		f.Limit = int(*limit)
	}

	return f
}

func parseInt(raw string) *int64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
