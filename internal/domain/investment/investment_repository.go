package investment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/citydata/citydata-api/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// Querier is the pgxpool.Pool subset used here; pgxmock satisfies it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Repository interface {
	// FetchEligible returns every city eligible for investment ranking:
	// both median_home_price and cap_rate must be present. Budget and cap
	// rate criteria narrow the set further. Scoring happens in the service.
	FetchEligible(ctx context.Context, criteria types.RecommendationCriteria) ([]types.InvestmentRow, error)
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

// buildEligibleQuery assembles the eligibility statement. The IS NOT NULL
// pair keeps unpriced or capless cities out of the ranking entirely rather
// than zero-scoring them.
func buildEligibleQuery(criteria types.RecommendationCriteria) (string, []any, error) {
	qb := squirrel.Select(
		"c.city_id", "c.city_name", "c.state_code", "c.population",
		"r.median_home_price", "r.market_trend",
		"i.cap_rate", "i.cash_on_cash_return", "i.growth_potential",
		"q.safety_score", "q.school_rating",
		"e.job_growth_rate_1yr",
	).
		From("cities c").
		LeftJoin("real_estate r ON c.city_id = r.city_id").
		LeftJoin("investment_metrics i ON c.city_id = i.city_id").
		LeftJoin("quality_of_life q ON c.city_id = q.city_id").
		LeftJoin("economy e ON c.city_id = e.city_id").
		Where("r.median_home_price IS NOT NULL").
		Where("i.cap_rate IS NOT NULL").
		PlaceholderFormat(squirrel.Dollar)

	if criteria.BudgetMin != nil {
		qb = qb.Where(squirrel.GtOrEq{"r.median_home_price": *criteria.BudgetMin})
	}
	if criteria.BudgetMax != nil {
		qb = qb.Where(squirrel.LtOrEq{"r.median_home_price": *criteria.BudgetMax})
	}
	if criteria.MinCapRate != nil {
		qb = qb.Where(squirrel.GtOrEq{"i.cap_rate": *criteria.MinCapRate})
	}

	// deterministic fetch order; ranking happens after scoring
	return qb.OrderBy("c.city_id ASC").ToSql()
}

func (r *RepositoryImpl) FetchEligible(ctx context.Context, criteria types.RecommendationCriteria) ([]types.InvestmentRow, error) {
	ctx, span := otel.Tracer("InvestmentRepository").Start(ctx, "FetchEligible")
	defer span.End()

	l := r.logger.With(slog.String("method", "FetchEligible"))

	query, args, err := buildEligibleQuery(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to build recommendations query: %w", err)
	}

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch eligible cities", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Database query failed")
		return nil, fmt.Errorf("failed to fetch eligible cities: %w", err)
	}
	defer rows.Close()

	var eligible []types.InvestmentRow
	for rows.Next() {
		var row types.InvestmentRow
		if err := rows.Scan(
			&row.CityID, &row.CityName, &row.StateCode, &row.Population,
			&row.MedianHomePrice, &row.MarketTrend,
			&row.CapRate, &row.CashOnCashReturn, &row.GrowthPotential,
			&row.SafetyScore, &row.SchoolRating,
			&row.JobGrowthRate1Yr,
		); err != nil {
			l.ErrorContext(ctx, "Failed to scan eligible row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan eligible row: %w", err)
		}
		eligible = append(eligible, row)
	}
	if err = rows.Err(); err != nil {
		l.ErrorContext(ctx, "Error iterating eligible rows", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("error iterating eligible rows: %w", err)
	}

	span.SetAttributes(attribute.Int("results.count", len(eligible)))
	span.SetStatus(codes.Ok, "Eligible cities fetched")
	return eligible, nil
}
