package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/simaogato/cryptodash-backend/internal/domain"
)

// walletRepository implements domain.WalletRepository for one process lifetime
type walletRepository struct {
	mu     sync.RWMutex
	wallet *domain.Wallet
}

// NewWalletRepository creates an empty in-memory wallet repository
func NewWalletRepository() domain.WalletRepository {
	return &walletRepository{}
}

// Get returns a copy of the stored snapshot
func (r *walletRepository) Get(ctx context.Context) (*domain.Wallet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.wallet == nil {
		return nil, fmt.Errorf("wallet %w", domain.ErrNotFound)
	}
	w := r.wallet.Clone()
	return &w, nil
}

// Save stores a copy of wallet, replacing the previous snapshot
func (r *walletRepository) Save(ctx context.Context, wallet *domain.Wallet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if wallet == nil {
		return errors.New("wallet cannot be nil")
	}

	w := wallet.Clone()

	r.mu.Lock()
	r.wallet = &w
	r.mu.Unlock()
	return nil
}
