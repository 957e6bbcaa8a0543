package compare

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
	// FetchByIDs returns the comparison rows for the given city IDs.
	// IDs with no matching city are silently absent from the result.
	FetchByIDs(ctx context.Context, cityIDs []string) ([]types.CompareRow, error)
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

// buildCompareQuery selects the comparison columns for a set of city IDs.
// No ORDER BY: downstream reductions depend on store order, and the set is
// small enough that callers re-fetch rather than paginate.
func buildCompareQuery(cityIDs []string) (string, []any, error) {
	return squirrel.Select(
		"c.city_id", "c.city_name", "c.state_code", "c.population",
		"d.median_income",
		"q.crime_index", "q.safety_score", "q.school_rating",
		"r.median_home_price", "r.median_rent",
		"i.cap_rate", "i.growth_potential",
	).
		From("cities c").
		LeftJoin("demographics d ON c.city_id = d.city_id").
		LeftJoin("quality_of_life q ON c.city_id = q.city_id").
		LeftJoin("real_estate r ON c.city_id = r.city_id").
		LeftJoin("investment_metrics i ON c.city_id = i.city_id").
		Where(squirrel.Eq{"c.city_id": cityIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *RepositoryImpl) FetchByIDs(ctx context.Context, cityIDs []string) ([]types.CompareRow, error) {
	ctx, span := otel.Tracer("CompareRepository").Start(ctx, "FetchByIDs")
	defer span.End()

	l := r.logger.With(slog.String("method", "FetchByIDs"))

	query, args, err := buildCompareQuery(cityIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build comparison query: %w", err)
	}

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch comparison rows", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Database query failed")
		return nil, fmt.Errorf("failed to fetch comparison rows: %w", err)
	}
	defer rows.Close()

	var result []types.CompareRow
	for rows.Next() {
		var row types.CompareRow
		if err := rows.Scan(
			&row.CityID, &row.CityName, &row.StateCode, &row.Population,
			&row.MedianIncome,
			&row.CrimeIndex, &row.SafetyScore, &row.SchoolRating,
			&row.MedianHomePrice, &row.MedianRent,
			&row.CapRate, &row.GrowthPotential,
		); err != nil {
			l.ErrorContext(ctx, "Failed to scan comparison row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan comparison row: %w", err)
		}
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		l.ErrorContext(ctx, "Error iterating comparison rows", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("error iterating comparison rows: %w", err)
	}

	span.SetAttributes(attribute.Int("results.count", len(result)))
	span.SetStatus(codes.Ok, "Comparison rows fetched")
	return result, nil
}
