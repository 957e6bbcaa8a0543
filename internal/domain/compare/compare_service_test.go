package compare

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/citydata/citydata-api/internal/types"
)

func ptr[T any](v T) *T { return &v }

// MockCompareRepo is a mock implementation of Repository.
type MockCompareRepo struct {
	mock.Mock
}

func (m *MockCompareRepo) FetchByIDs(ctx context.Context, cityIDs []string) ([]types.CompareRow, error) {
	args := m.Called(ctx, cityIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.CompareRow), args.Error(1)
}

func TestNormalizeIDs(t *testing.T) {
	got := NormalizeIDs([]string{" Austin-TX ", "denver-co", "AUSTIN-tx", "", "denver-co"})
	assert.Equal(t, []string{"austin-tx", "denver-co"}, got)
}

func TestCompare_RejectsFewerThanTwoDistinctIDs(t *testing.T) {
	svc := NewService(new(MockCompareRepo), slog.Default())

	_, _, _, err := svc.Compare(context.Background(), []string{"austin-tx", "AUSTIN-TX"})
	assert.ErrorIs(t, err, types.ErrBadRequest)
}

func TestCompare_NoMatchesIsNotFound(t *testing.T) {
	repo := new(MockCompareRepo)
	repo.On("FetchByIDs", mock.Anything, []string{"nowhere-xx", "missing-yy"}).Return([]types.CompareRow{}, nil)
	svc := NewService(repo, slog.Default())

	_, _, _, err := svc.Compare(context.Background(), []string{"nowhere-xx", "missing-yy"})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestCompare_RepoErrorWrapped(t *testing.T) {
	repo := new(MockCompareRepo)
	repo.On("FetchByIDs", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
	svc := NewService(repo, slog.Default())

	_, _, _, err := svc.Compare(context.Background(), []string{"a-aa", "b-bb"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrNotFound)
}

func TestAnalyze_Extremes(t *testing.T) {
	rows := []types.CompareRow{
		{CityID: "austin-tx", MedianHomePrice: ptr(int64(450000)), SafetyScore: ptr(6.2), SchoolRating: ptr(7.8), CapRate: ptr(0.045)},
		{CityID: "memphis-tn", MedianHomePrice: ptr(int64(180000)), SafetyScore: ptr(4.1), SchoolRating: ptr(5.2), CapRate: ptr(0.082)},
		{CityID: "denver-co", MedianHomePrice: ptr(int64(560000)), SafetyScore: ptr(7.0), SchoolRating: ptr(7.1), CapRate: ptr(0.038)},
	}

	a := Analyze(rows)
	assert.Equal(t, "memphis-tn", a.MostAffordable.CityID)
	assert.Equal(t, "denver-co", a.Safest.CityID)
	assert.Equal(t, "austin-tx", a.BestSchools.CityID)
	assert.Equal(t, "memphis-tn", a.BestInvestment.CityID)
}

func TestAnalyze_FirstRowWinsTies(t *testing.T) {
	rows := []types.CompareRow{
		{CityID: "first", SafetyScore: ptr(7.0), SchoolRating: ptr(6.0), CapRate: ptr(0.05), MedianHomePrice: ptr(int64(300000))},
		{CityID: "second", SafetyScore: ptr(7.0), SchoolRating: ptr(6.0), CapRate: ptr(0.05), MedianHomePrice: ptr(int64(300000))},
	}

	a := Analyze(rows)
	assert.Equal(t, "first", a.MostAffordable.CityID)
	assert.Equal(t, "first", a.Safest.CityID)
	assert.Equal(t, "first", a.BestSchools.CityID)
	assert.Equal(t, "first", a.BestInvestment.CityID)
}

func TestAnalyze_NullPriceNeverMostAffordable(t *testing.T) {
	rows := []types.CompareRow{
		{CityID: "unpriced"},
		{CityID: "priced", MedianHomePrice: ptr(int64(900000))},
	}

	a := Analyze(rows)
	assert.Equal(t, "priced", a.MostAffordable.CityID)
}

func TestAnalyze_NullMetricsNeverBeatPresentOnes(t *testing.T) {
	rows := []types.CompareRow{
		{CityID: "sparse"},
		{CityID: "scored", SafetyScore: ptr(0.1), SchoolRating: ptr(0.1), CapRate: ptr(0.001)},
	}

	a := Analyze(rows)
	assert.Equal(t, "scored", a.Safest.CityID)
	assert.Equal(t, "scored", a.BestSchools.CityID)
	assert.Equal(t, "scored", a.BestInvestment.CityID)
}

func TestSummarize_MissingPriceZeroesLowest(t *testing.T) {
	rows := []types.CompareRow{
		{CityID: "priced", MedianHomePrice: ptr(int64(420000))},
		{CityID: "unpriced"},
	}

	s := Summarize(rows)
	assert.Equal(t, 2, s.CitiesCompared)
	assert.EqualValues(t, 0, s.PriceRange.Lowest)
	assert.EqualValues(t, 420000, s.PriceRange.Highest)
}

func TestBuildCompareQuery(t *testing.T) {
	sqlStr, args, err := buildCompareQuery([]string{"austin-tx", "denver-co"})
	require.NoError(t, err)

	assert.Contains(t, sqlStr, "c.city_id IN ($1,$2)")
	assert.NotContains(t, sqlStr, "ORDER BY")
	assert.Equal(t, []any{"austin-tx", "denver-co"}, args)
}
