package city

import (
	"context"
	"log/slog"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/citydata/citydata-api/internal/types"
)

const citiesAvailableCacheKey = "cities_available"

// Service sits between the handlers and the repository. It also memoizes
// the city count used by the health endpoint.
type Service struct {
	repo   Repository
	logger *slog.Logger
	cache  *cache.Cache
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		cache:  cache.New(time.Minute, 5*time.Minute),
	}
}

// GetCity returns the full detail row; ids are slugs, lowercased on the way in.
func (s *Service) GetCity(ctx context.Context, cityID string) (*types.CityDetail, error) {
	return s.repo.GetCityDetail(ctx, strings.ToLower(cityID))
}

func (s *Service) ListCities(ctx context.Context, limit int) ([]types.CitySummary, error) {
	return s.repo.ListCities(ctx, limit)
}

func (s *Service) SearchCities(ctx context.Context, filters types.SearchFilters) ([]types.SearchRow, error) {
	return s.repo.SearchCities(ctx, filters)
}

// CitiesAvailable returns the city count for the health endpoint, cached for
// a minute so liveness probes do not hit the store on every poll.
func (s *Service) CitiesAvailable(ctx context.Context) int64 {
	if v, ok := s.cache.Get(citiesAvailableCacheKey); ok {
		return v.(int64)
	}
	count, err := s.repo.CountCities(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to count cities for health", slog.Any("error", err))
		return 0
	}
	s.cache.SetDefault(citiesAvailableCacheKey, count)
	return count
}
