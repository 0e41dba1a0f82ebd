package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/simaogato/cryptodash-backend/internal/domain"
	"github.com/simaogato/cryptodash-backend/internal/usecase/allocator"
)

// WalletSeeder installs the starting wallet of a session
type WalletSeeder struct {
	repo    domain.WalletRepository
	initial domain.Wallet
}

// NewWalletSeeder creates a new WalletSeeder instance
func NewWalletSeeder(repo domain.WalletRepository, initial domain.Wallet) *WalletSeeder {
	return &WalletSeeder{
		repo:    repo,
		initial: initial,
	}
}

// Seed stores the initial wallet if the repository is empty
// If a wallet already exists, no action is taken
// TotalValue and percentages are recomputed from the holdings rather than
// trusted from the input
func (s *WalletSeeder) Seed(ctx context.Context) error {
	_, err := s.repo.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to read wallet: %w", err)
	}

	if s.initial.Cash.IsNegative() {
		return errors.New("starting cash must not be negative")
	}

	wallet := s.initial.Clone()
	if err := wallet.Portfolio.Validate(); err != nil {
		return fmt.Errorf("invalid initial portfolio: %w", err)
	}
	wallet.Portfolio = allocator.Rebalance(wallet.Portfolio)

	return s.repo.Save(ctx, &wallet)
}
