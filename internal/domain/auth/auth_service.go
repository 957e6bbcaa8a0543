package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/citydata/citydata-api/internal/types"
)

// DemoToken grants free-tier access without a store lookup. Fixed and
// non-expiring, it exists so the docs examples work against any deployment.
const DemoToken = "cd_demo_12345abcdef"

const demoCustomerID = "demo_001"

// Service validates bearer credentials and resolves caller identities.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ValidateKey resolves an API key to a caller identity.
// Unknown or inactive keys yield types.ErrUnauthenticated; any store failure
// is returned as-is so the handler can answer with a generic 500.
func (s *Service) ValidateKey(ctx context.Context, apiKey string) (*types.Caller, error) {
	if apiKey == DemoToken {
		return &types.Caller{
			CustomerID:       demoCustomerID,
			SubscriptionTier: "free",
			MonthlyLimit:     1000,
			KeyID:            apiKey,
			Demo:             true,
		}, nil
	}

	customer, err := s.repo.GetActiveCredential(ctx, apiKey)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.ErrUnauthenticated
		}
		s.logger.ErrorContext(ctx, "API key validation error", slog.Any("error", err))
		return nil, fmt.Errorf("credential lookup failed: %w", err)
	}

	return &types.Caller{
		CustomerID:       customer.CustomerID,
		SubscriptionTier: customer.SubscriptionTier,
		MonthlyLimit:     customer.MonthlyLimit,
		KeyID:            apiKey,
	}, nil
}
