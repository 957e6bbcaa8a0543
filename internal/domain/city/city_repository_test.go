package city

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citydata/citydata-api/internal/types"
)

func newMockRepo(t *testing.T) (*RepositoryImpl, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return NewRepository(mockPool, slog.Default()), mockPool
}

func TestGetCityDetail_NotFound(t *testing.T) {
	repo, mockPool := newMockRepo(t)

	mockPool.ExpectQuery(`SELECT\s+c\.city_id,`).
		WithArgs("atlantis-xx").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetCityDetail(context.Background(), "atlantis-xx")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestGetCityDetail_StoreFailure(t *testing.T) {
	repo, mockPool := newMockRepo(t)

	mockPool.ExpectQuery(`SELECT\s+c\.city_id,`).
		WithArgs("austin-tx").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetCityDetail(context.Background(), "austin-tx")
	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrNotFound)
}

func TestListCities(t *testing.T) {
	repo, mockPool := newMockRepo(t)

	price := int64(540000)
	safety := 6.8
	schools := 7.4
	rows := pgxmock.NewRows([]string{
		"city_id", "city_name", "state_code", "population",
		"median_home_price", "safety_score", "school_rating",
	}).
		AddRow("phoenix-az", "Phoenix", "AZ", int64(1608139), &price, &safety, &schools).
		AddRow("austin-tx", "Austin", "TX", int64(961855), (*int64)(nil), (*float64)(nil), (*float64)(nil))

	mockPool.ExpectQuery(`FROM cities c`).
		WithArgs(100).
		WillReturnRows(rows)

	cities, err := repo.ListCities(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, cities, 2)

	assert.Equal(t, "phoenix-az", cities[0].CityID)
	require.NotNil(t, cities[0].MedianHomePrice)
	assert.EqualValues(t, 540000, *cities[0].MedianHomePrice)

	// absent satellite rows come back as nulls, never an error
	assert.Nil(t, cities[1].MedianHomePrice)
	assert.Nil(t, cities[1].SafetyScore)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSearchCities_BindsFilterValues(t *testing.T) {
	repo, mockPool := newMockRepo(t)

	f := ParseSearchFilters(url.Values{
		"max_home_price": {"400000"},
		"state":          {"tn"},
	}, defaultSearchLimit)

	rows := pgxmock.NewRows([]string{
		"city_id", "city_name", "state_code", "population",
		"crime_index", "safety_score", "school_rating",
		"median_home_price", "median_rent", "market_trend",
		"cap_rate", "growth_potential",
	})

	mockPool.ExpectQuery(`FROM cities c LEFT JOIN quality_of_life`).
		WithArgs("TN", int64(400000)).
		WillReturnRows(rows)

	results, err := repo.SearchCities(context.Background(), f)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestCountCities(t *testing.T) {
	repo, mockPool := newMockRepo(t)

	mockPool.ExpectQuery(`SELECT COUNT\(\*\) FROM cities`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(12)))

	count, err := repo.CountCities(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 12, count)
}
