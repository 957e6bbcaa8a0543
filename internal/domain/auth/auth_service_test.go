package auth

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

// MockRepository is a mock implementation of Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetActiveCredential(ctx context.Context, keyID string) (*types.Customer, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Customer), args.Error(1)
}

func TestValidateKey_DemoTokenSkipsStore(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, slog.Default())

	caller, err := svc.ValidateKey(context.Background(), DemoToken)
	require.NoError(t, err)

	assert.Equal(t, "demo_001", caller.CustomerID)
	assert.Equal(t, "free", caller.SubscriptionTier)
	assert.Equal(t, 1000, caller.MonthlyLimit)
	assert.True(t, caller.Demo)
	mockRepo.AssertNotCalled(t, "GetActiveCredential")
}

func TestValidateKey_KnownKey(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("GetActiveCredential", mock.Anything, "cd_live_abc").Return(&types.Customer{
		CustomerID:       "cust_1001",
		SubscriptionTier: "pro",
		MonthlyLimit:     50000,
	}, nil)
	svc := NewService(mockRepo, slog.Default())

	caller, err := svc.ValidateKey(context.Background(), "cd_live_abc")
	require.NoError(t, err)

	assert.Equal(t, "cust_1001", caller.CustomerID)
	assert.Equal(t, "cd_live_abc", caller.KeyID)
	assert.False(t, caller.Demo)
	mockRepo.AssertExpectations(t)
}

func TestValidateKey_UnknownKey(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("GetActiveCredential", mock.Anything, "nope").Return(nil, types.ErrNotFound)
	svc := NewService(mockRepo, slog.Default())

	_, err := svc.ValidateKey(context.Background(), "nope")
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
}

func TestValidateKey_StoreFailure(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("GetActiveCredential", mock.Anything, "cd_live_abc").Return(nil, errors.New("connection refused"))
	svc := NewService(mockRepo, slog.Default())

	_, err := svc.ValidateKey(context.Background(), "cd_live_abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrUnauthenticated)
}
