package types

// CityDetail is the full seven-table join for a single city. Satellite
// columns are pointers: a missing satellite row surfaces as JSON null,
// never as an error.
type CityDetail struct {
	CityID    string  `json:"city_id"`
	CityName  string  `json:"city_name"`
	StateCode string  `json:"state_code"`
	StateFull string  `json:"state_full"`
	Population int64  `json:"population"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// demographics
	MedianAge             *float64 `json:"median_age"`
	MedianIncome          *int64   `json:"median_income"`
	EducationBachelorPlus *float64 `json:"education_bachelor_plus"`

	// economy
	UnemploymentRate  *float64 `json:"unemployment_rate"`
	JobGrowthRate1Yr  *float64 `json:"job_growth_rate_1yr"`
	CostOfLivingIndex *float64 `json:"cost_of_living_index"`

	// quality_of_life
	CrimeIndex       *float64 `json:"crime_index"`
	SafetyScore      *float64 `json:"safety_score"`
	SchoolRating     *float64 `json:"school_rating"`
	WalkabilityScore *float64 `json:"walkability_score"`
	WeatherScore     *float64 `json:"weather_score"`

	// real_estate
	MedianHomePrice  *int64   `json:"median_home_price"`
	MedianRent       *int64   `json:"median_rent"`
	PriceToRentRatio *float64 `json:"price_to_rent_ratio"`
	MarketTrend      *string  `json:"market_trend"`

	// investment_metrics
	CapRate          *float64 `json:"cap_rate"`
	CashOnCashReturn *float64 `json:"cash_on_cash_return"`
	GrowthPotential  *string  `json:"growth_potential"`

	// infrastructure
	PublicTransitScore   *float64 `json:"public_transit_score"`
	AvgInternetSpeedMbps *float64 `json:"avg_internet_speed_mbps"`
	AvgCommuteTime       *float64 `json:"avg_commute_time"`

	// lifestyle
	RestaurantsPerCapita   *float64 `json:"restaurants_per_capita"`
	NightlifeScore         *float64 `json:"nightlife_score"`
	OutdoorRecreationScore *float64 `json:"outdoor_recreation_score"`
}

// CitySummary is the minimal listing row for GET /api/v1/cities.
type CitySummary struct {
	CityID          string   `json:"city_id"`
	CityName        string   `json:"city_name"`
	StateCode       string   `json:"state_code"`
	Population      int64    `json:"population"`
	MedianHomePrice *int64   `json:"median_home_price"`
	SafetyScore     *float64 `json:"safety_score"`
	SchoolRating    *float64 `json:"school_rating"`
}

// SearchRow is a filtered-search result row.
type SearchRow struct {
	CityID          string   `json:"city_id"`
	CityName        string   `json:"city_name"`
	StateCode       string   `json:"state_code"`
	Population      int64    `json:"population"`
	CrimeIndex      *float64 `json:"crime_index"`
	SafetyScore     *float64 `json:"safety_score"`
	SchoolRating    *float64 `json:"school_rating"`
	MedianHomePrice *int64   `json:"median_home_price"`
	MedianRent      *int64   `json:"median_rent"`
	MarketTrend     *string  `json:"market_trend"`
	CapRate         *float64 `json:"cap_rate"`
	GrowthPotential *string  `json:"growth_potential"`
}

// SearchFilters is the parsed filter set applied to a search. Unset fields
// were either absent from the query string or failed numeric coercion and
// were dropped; the struct is echoed back to the caller as filters_applied.
type SearchFilters struct {
	MinPopulation   *int64   `json:"min_population,omitempty"`
	MaxPopulation   *int64   `json:"max_population,omitempty"`
	MaxCrimeIndex   *float64 `json:"max_crime_index,omitempty"`
	MinSchoolRating *float64 `json:"min_school_rating,omitempty"`
	State           *string  `json:"state,omitempty"`
	MaxHomePrice    *int64   `json:"max_home_price,omitempty"`
	MinCapRate      *float64 `json:"min_cap_rate,omitempty"`
	SortBy          string   `json:"sort_by"`
	Limit           int      `json:"limit"`
}

// InvestmentRow is one scoring-eligible row. Eligibility (median_home_price
// and cap_rate both present) is enforced by the repository query.
type InvestmentRow struct {
	CityID           string   `json:"city_id"`
	CityName         string   `json:"city_name"`
	StateCode        string   `json:"state_code"`
	Population       int64    `json:"population"`
	MedianHomePrice  *int64   `json:"median_home_price"`
	MarketTrend      *string  `json:"market_trend"`
	CapRate          *float64 `json:"cap_rate"`
	CashOnCashReturn *float64 `json:"cash_on_cash_return"`
	GrowthPotential  *string  `json:"growth_potential"`
	SafetyScore      *float64 `json:"safety_score"`
	SchoolRating     *float64 `json:"school_rating"`
	JobGrowthRate1Yr *float64 `json:"job_growth_rate_1yr"`
}

// Recommendation is an InvestmentRow with its derived score and highlights.
type Recommendation struct {
	InvestmentRow
	InvestmentScore float64  `json:"investment_score"`
	Highlights      []string `json:"highlights"`
}

// RecommendationCriteria echoes the recommendation query back to the caller.
type RecommendationCriteria struct {
	BudgetMin     *int64   `json:"budget_min,omitempty"`
	BudgetMax     *int64   `json:"budget_max,omitempty"`
	MinCapRate    *float64 `json:"min_cap_rate,omitempty"`
	RiskTolerance string   `json:"risk_tolerance"`
	Limit         int      `json:"limit"`
}

// CompareRow is one city in a comparison set.
type CompareRow struct {
	CityID          string   `json:"city_id"`
	CityName        string   `json:"city_name"`
	StateCode       string   `json:"state_code"`
	Population      int64    `json:"population"`
	MedianIncome    *int64   `json:"median_income"`
	CrimeIndex      *float64 `json:"crime_index"`
	SafetyScore     *float64 `json:"safety_score"`
	SchoolRating    *float64 `json:"school_rating"`
	MedianHomePrice *int64   `json:"median_home_price"`
	MedianRent      *int64   `json:"median_rent"`
	CapRate         *float64 `json:"cap_rate"`
	GrowthPotential *string  `json:"growth_potential"`
}

// ComparisonAnalysis holds the per-dimension extremes of a comparison set.
type ComparisonAnalysis struct {
	MostAffordable *CompareRow `json:"most_affordable"`
	Safest         *CompareRow `json:"safest"`
	BestSchools    *CompareRow `json:"best_schools"`
	BestInvestment *CompareRow `json:"best_investment"`
}

// PriceRange is the min/max median home price across a comparison set.
// Missing prices count as 0 here, so one unpriced city pins lowest to 0.
type PriceRange struct {
	Lowest  int64 `json:"lowest"`
	Highest int64 `json:"highest"`
}

// ComparisonSummary wraps the counts and price range of a comparison.
type ComparisonSummary struct {
	CitiesCompared int        `json:"cities_compared"`
	PriceRange     PriceRange `json:"price_range"`
}
