package city

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/citydata/citydata-api/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// Querier is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository interface {
	// GetCityDetail returns the full seven-table join for one city.
	// Returns types.ErrNotFound for an unknown id.
	GetCityDetail(ctx context.Context, cityID string) (*types.CityDetail, error)
	// ListCities returns up to limit cities ordered by population descending.
	ListCities(ctx context.Context, limit int) ([]types.CitySummary, error)
	// SearchCities runs the filtered/sorted search described by filters.
	SearchCities(ctx context.Context, filters types.SearchFilters) ([]types.SearchRow, error)
	// CountCities returns the number of city rows.
	CountCities(ctx context.Context) (int64, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool Querier
}

func NewRepository(pgpool Querier, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pgpool,
	}
}

const cityDetailQuery = `
	SELECT
		c.city_id, c.city_name, c.state_code, c.state_full, c.population, c.latitude, c.longitude,
		d.median_age, d.median_income, d.education_bachelor_plus,
		e.unemployment_rate, e.job_growth_rate_1yr, e.cost_of_living_index,
		q.crime_index, q.safety_score, q.school_rating, q.walkability_score, q.weather_score,
		r.median_home_price, r.median_rent, r.price_to_rent_ratio, r.market_trend,
		i.cap_rate, i.cash_on_cash_return, i.growth_potential,
		inf.public_transit_score, inf.avg_internet_speed_mbps, inf.avg_commute_time,
		l.restaurants_per_capita, l.nightlife_score, l.outdoor_recreation_score
	FROM cities c
	LEFT JOIN demographics d ON c.city_id = d.city_id
	LEFT JOIN economy e ON c.city_id = e.city_id
	LEFT JOIN quality_of_life q ON c.city_id = q.city_id
	LEFT JOIN real_estate r ON c.city_id = r.city_id
	LEFT JOIN investment_metrics i ON c.city_id = i.city_id
	LEFT JOIN infrastructure inf ON c.city_id = inf.city_id
	LEFT JOIN lifestyle l ON c.city_id = l.city_id
	WHERE c.city_id = $1
`

func (r *RepositoryImpl) GetCityDetail(ctx context.Context, cityID string) (*types.CityDetail, error) {
	ctx, span := otel.Tracer("CityRepository").Start(ctx, "GetCityDetail", trace.WithAttributes(
		attribute.String("city.id", cityID),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "GetCityDetail"))

	var c types.CityDetail
	err := r.pgpool.QueryRow(ctx, cityDetailQuery, cityID).Scan(
		&c.CityID, &c.CityName, &c.StateCode, &c.StateFull, &c.Population, &c.Latitude, &c.Longitude,
		&c.MedianAge, &c.MedianIncome, &c.EducationBachelorPlus,
		&c.UnemploymentRate, &c.JobGrowthRate1Yr, &c.CostOfLivingIndex,
		&c.CrimeIndex, &c.SafetyScore, &c.SchoolRating, &c.WalkabilityScore, &c.WeatherScore,
		&c.MedianHomePrice, &c.MedianRent, &c.PriceToRentRatio, &c.MarketTrend,
		&c.CapRate, &c.CashOnCashReturn, &c.GrowthPotential,
		&c.PublicTransitScore, &c.AvgInternetSpeedMbps, &c.AvgCommuteTime,
		&c.RestaurantsPerCapita, &c.NightlifeScore, &c.OutdoorRecreationScore,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			l.WarnContext(ctx, "City not found", slog.String("city_id", cityID))
			span.SetStatus(codes.Error, "City not found")
			return nil, types.ErrNotFound
		}
		l.ErrorContext(ctx, "Failed to fetch city detail", slog.Any("error", err), slog.String("city_id", cityID))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Database query failed")
		return nil, fmt.Errorf("failed to fetch city '%s': %w", cityID, err)
	}

	span.SetStatus(codes.Ok, "City retrieved")
	return &c, nil
}

const listCitiesQuery = `
	SELECT c.city_id, c.city_name, c.state_code, c.population,
	       r.median_home_price, q.safety_score, q.school_rating
	FROM cities c
	LEFT JOIN real_estate r ON c.city_id = r.city_id
	LEFT JOIN quality_of_life q ON c.city_id = q.city_id
	ORDER BY c.population DESC
	LIMIT $1
`

func (r *RepositoryImpl) ListCities(ctx context.Context, limit int) ([]types.CitySummary, error) {
	ctx, span := otel.Tracer("CityRepository").Start(ctx, "ListCities", trace.WithAttributes(
		attribute.Int("limit", limit),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "ListCities"))

	rows, err := r.pgpool.Query(ctx, listCitiesQuery, limit)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list cities", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Database query failed")
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	defer rows.Close()

	var cities []types.CitySummary
	for rows.Next() {
		var c types.CitySummary
		if err := rows.Scan(
			&c.CityID, &c.CityName, &c.StateCode, &c.Population,
			&c.MedianHomePrice, &c.SafetyScore, &c.SchoolRating,
		); err != nil {
			l.ErrorContext(ctx, "Failed to scan city row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan city row: %w", err)
		}
		cities = append(cities, c)
	}
	if err = rows.Err(); err != nil {
		l.ErrorContext(ctx, "Error iterating city rows", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("error iterating city rows: %w", err)
	}

	span.SetAttributes(attribute.Int("results.count", len(cities)))
	span.SetStatus(codes.Ok, "Cities listed")
	return cities, nil
}

// sortOptions maps the public sort_by keys to ORDER BY clauses. Anything
// else falls back to population descending, never an error.
var sortOptions = map[string]string{
	"population":    "c.population DESC",
	"safety":        "q.safety_score DESC",
	"home_price":    "r.median_home_price ASC",
	"cap_rate":      "i.cap_rate DESC",
	"school_rating": "q.school_rating DESC",
}

func orderClause(sortBy string) string {
	if clause, ok := sortOptions[sortBy]; ok {
		return clause
	}
	return "c.population DESC"
}

// buildSearchQuery assembles the parameterized search statement from the
// typed filter set. User input only ever travels through bind parameters.
func buildSearchQuery(filters types.SearchFilters) (string, []any, error) {
	qb := squirrel.Select(
		"c.city_id", "c.city_name", "c.state_code", "c.population",
		"q.crime_index", "q.safety_score", "q.school_rating",
		"r.median_home_price", "r.median_rent", "r.market_trend",
		"i.cap_rate", "i.growth_potential",
	).
		From("cities c").
		LeftJoin("quality_of_life q ON c.city_id = q.city_id").
		LeftJoin("real_estate r ON c.city_id = r.city_id").
		LeftJoin("investment_metrics i ON c.city_id = i.city_id").
		PlaceholderFormat(squirrel.Dollar)

	if filters.MinPopulation != nil {
		qb = qb.Where(squirrel.GtOrEq{"c.population": *filters.MinPopulation})
	}
	if filters.MaxPopulation != nil {
		qb = qb.Where(squirrel.LtOrEq{"c.population": *filters.MaxPopulation})
	}
	if filters.MaxCrimeIndex != nil {
		qb = qb.Where(squirrel.LtOrEq{"q.crime_index": *filters.MaxCrimeIndex})
	}
	if filters.MinSchoolRating != nil {
		qb = qb.Where(squirrel.GtOrEq{"q.school_rating": *filters.MinSchoolRating})
	}
	if filters.State != nil {
		qb = qb.Where(squirrel.Eq{"c.state_code": *filters.State})
	}
	if filters.MaxHomePrice != nil {
		qb = qb.Where(squirrel.LtOrEq{"r.median_home_price": *filters.MaxHomePrice})
	}
	if filters.MinCapRate != nil {
		qb = qb.Where(squirrel.GtOrEq{"i.cap_rate": *filters.MinCapRate})
	}

	// Secondary key keeps the order deterministic across equal sort values.
	qb = qb.OrderBy(orderClause(filters.SortBy), "c.city_id ASC").
		Limit(uint64(filters.Limit))

	return qb.ToSql()
}

func (r *RepositoryImpl) SearchCities(ctx context.Context, filters types.SearchFilters) ([]types.SearchRow, error) {
	ctx, span := otel.Tracer("CityRepository").Start(ctx, "SearchCities", trace.WithAttributes(
		attribute.String("sort_by", filters.SortBy),
		attribute.Int("limit", filters.Limit),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "SearchCities"))

	query, args, err := buildSearchQuery(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		l.ErrorContext(ctx, "Failed to search cities", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Database query failed")
		return nil, fmt.Errorf("failed to search cities: %w", err)
	}
	defer rows.Close()

	var results []types.SearchRow
	for rows.Next() {
		var row types.SearchRow
		if err := rows.Scan(
			&row.CityID, &row.CityName, &row.StateCode, &row.Population,
			&row.CrimeIndex, &row.SafetyScore, &row.SchoolRating,
			&row.MedianHomePrice, &row.MedianRent, &row.MarketTrend,
			&row.CapRate, &row.GrowthPotential,
		); err != nil {
			l.ErrorContext(ctx, "Failed to scan search row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		results = append(results, row)
	}
	if err = rows.Err(); err != nil {
		l.ErrorContext(ctx, "Error iterating search rows", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("error iterating search rows: %w", err)
	}

	span.SetAttributes(attribute.Int("results.count", len(results)))
	span.SetStatus(codes.Ok, "Search completed")
	return results, nil
}

func (r *RepositoryImpl) CountCities(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pgpool.QueryRow(ctx, `SELECT COUNT(*) FROM cities`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cities: %w", err)
	}
	return count, nil
}
