package seeder

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/simaogato/cryptodash-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockWalletRepository is a mock implementation of WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Get(ctx context.Context) (*domain.Wallet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Save(ctx context.Context, wallet *domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func initialWallet() domain.Wallet {
	return domain.Wallet{
		Portfolio: domain.Portfolio{
			Holdings: []domain.Holding{
				{Symbol: "BTC", Amount: decimal.NewFromFloat(0.5), Value: decimal.NewFromInt(300)},
				{Symbol: "ETH", Amount: decimal.NewFromInt(2), Value: decimal.NewFromInt(100)},
			},
			TotalValue: decimal.NewFromInt(999), // stale, recomputed on seed
		},
		Cash: decimal.NewFromInt(1000),
	}
}

func TestWalletSeeder_Seed_EmptyRepository(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockWalletRepository)
	seeder := NewWalletSeeder(mockRepo, initialWallet())

	mockRepo.On("Get", ctx).Return(nil, domain.ErrNotFound)
	mockRepo.On("Save", ctx, mock.MatchedBy(func(w *domain.Wallet) bool {
		return w.Portfolio.TotalValue.Equal(decimal.NewFromInt(400)) &&
			w.Portfolio.Holdings[0].Percentage.Equal(decimal.NewFromInt(75)) &&
			w.Portfolio.Holdings[1].Percentage.Equal(decimal.NewFromInt(25)) &&
			w.Cash.Equal(decimal.NewFromInt(1000))
	})).Return(nil)

	err := seeder.Seed(ctx)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestWalletSeeder_Seed_WalletExists(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockWalletRepository)
	seeder := NewWalletSeeder(mockRepo, initialWallet())

	existing := initialWallet()
	mockRepo.On("Get", ctx).Return(&existing, nil)

	err := seeder.Seed(ctx)

	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWalletSeeder_Seed_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockWalletRepository)
	seeder := NewWalletSeeder(mockRepo, initialWallet())

	mockRepo.On("Get", ctx).Return(nil, errors.New("connection failed"))

	err := seeder.Seed(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read wallet")
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWalletSeeder_Seed_InvalidInitialWallet(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(w *domain.Wallet)
		errMsg string
	}{
		{
			name:   "Negative cash",
			mutate: func(w *domain.Wallet) { w.Cash = decimal.NewFromInt(-1) },
			errMsg: "starting cash must not be negative",
		},
		{
			name: "Duplicate holding",
			mutate: func(w *domain.Wallet) {
				w.Portfolio.Holdings[1].Symbol = "BTC"
			},
			errMsg: "invalid initial portfolio: duplicate holding for BTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mockRepo := new(MockWalletRepository)
			w := initialWallet()
			tt.mutate(&w)
			seeder := NewWalletSeeder(mockRepo, w)

			mockRepo.On("Get", ctx).Return(nil, domain.ErrNotFound)

			err := seeder.Seed(ctx)

			assert.EqualError(t, err, tt.errMsg)
			mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}
