package usage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/citydata/citydata-api/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// Querier is the pgxpool.Pool subset used here; pgxmock satisfies it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository interface {
	// Record appends one api_usage row.
	Record(ctx context.Context, rec types.UsageRecord) error
	// Stats aggregates the trailing 30 days of usage.
	Stats(ctx context.Context) (types.UsageStats, error)
}

const insertUsageQuery = `
	INSERT INTO api_usage (customer_id, api_key_id, endpoint, method, status_code)
	VALUES ($1, $2, $3, $4, $5)`

const usageStatsQuery = `
	SELECT
		COUNT(*) AS total_requests,
		COUNT(DISTINCT customer_id) AS active_customers
	FROM api_usage
	WHERE request_time >= NOW() - INTERVAL '30 days'`

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

func (r *RepositoryImpl) Record(ctx context.Context, rec types.UsageRecord) error {
	ctx, span := otel.Tracer("UsageRepository").Start(ctx, "Record")
	defer span.End()

	_, err := r.pgpool.Exec(ctx, insertUsageQuery,
		rec.CustomerID, rec.APIKeyID, rec.Endpoint, rec.Method, rec.StatusCode)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Usage insert failed")
		return fmt.Errorf("failed to record usage: %w", err)
	}

	span.SetAttributes(attribute.String("usage.endpoint", rec.Endpoint))
	span.SetStatus(codes.Ok, "Usage recorded")
	return nil
}

func (r *RepositoryImpl) Stats(ctx context.Context) (types.UsageStats, error) {
	ctx, span := otel.Tracer("UsageRepository").Start(ctx, "Stats")
	defer span.End()

	l := r.logger.With(slog.String("method", "Stats"))

	var stats types.UsageStats
	if err := r.pgpool.QueryRow(ctx, usageStatsQuery).Scan(&stats.TotalRequests, &stats.ActiveCustomers); err != nil {
		l.ErrorContext(ctx, "Failed to fetch usage stats", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Stats query failed")
		return types.UsageStats{}, fmt.Errorf("failed to fetch usage stats: %w", err)
	}

	span.SetAttributes(attribute.Int64("usage.total_requests", stats.TotalRequests))
	span.SetStatus(codes.Ok, "Usage stats fetched")
	return stats, nil
}
