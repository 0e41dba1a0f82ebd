package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/cryptodash-backend/internal/domain"
	"github.com/simaogato/cryptodash-backend/internal/usecase/ledger"
)

// Quoter prices an asset; satisfied by *market.MarketService
type Quoter interface {
	Resolve(idOrSymbol string) (domain.Asset, error)
	Quote(ctx context.Context, idOrSymbol string) (domain.Quote, error)
}

// WalletService handles buy/sell actions on the session wallet
type WalletService struct {
	Repo   domain.WalletRepository
	Ledger *ledger.Ledger
	Quotes Quoter
	Log    logrus.FieldLogger

	// writeMu serializes read-apply-save so every trade starts from the
	// snapshot the previous one produced
	writeMu sync.Mutex
}

// NewWalletService creates a new WalletService instance
func NewWalletService(repo domain.WalletRepository, l *ledger.Ledger, quotes Quoter, log logrus.FieldLogger) *WalletService {
	return &WalletService{
		Repo:   repo,
		Ledger: l,
		Quotes: quotes,
		Log:    log,
	}
}

// Get returns the current wallet snapshot
func (s *WalletService) Get(ctx context.Context) (*domain.Wallet, error) {
	return s.Repo.Get(ctx)
}

// Transactions returns at most limit log entries, newest first
// limit <= 0 returns the full log
func (s *WalletService) Transactions(ctx context.Context, limit int) (domain.TransactionLog, error) {
	w, err := s.Repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return w.Log.Latest(limit), nil
}

// Target resolves what the user picked into a TradeTarget
// A sell target carries the amount currently held
func (s *WalletService) Target(ctx context.Context, direction domain.Direction, idOrSymbol string) (domain.TradeTarget, error) {
	asset, err := s.Quotes.Resolve(idOrSymbol)
	if err != nil {
		return domain.TradeTarget{}, err
	}

	switch direction {
	case domain.DirectionBuy:
		return domain.NewBuyTarget(asset), nil
	case domain.DirectionSell:
		w, err := s.Repo.Get(ctx)
		if err != nil {
			return domain.TradeTarget{}, err
		}
		h, ok := w.Portfolio.Holding(asset.Symbol)
		if !ok {
			return domain.TradeTarget{}, fmt.Errorf("%w: no %s held", domain.ErrInsufficientHolding, asset.Symbol)
		}
		return domain.NewSellTarget(asset, h.Amount), nil
	}
	return domain.TradeTarget{}, fmt.Errorf("%w: unknown direction %q", domain.ErrInvalidParameters, direction)
}

// Execute prices target, applies the trade and stores the new snapshot.
// On any error the stored wallet is left as it was.
func (s *WalletService) Execute(ctx context.Context, target domain.TradeTarget, amount decimal.Decimal) (*domain.Wallet, *domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount)
	}
	if target.Kind == domain.TradeKindSell && amount.GreaterThan(target.AvailableAmount) {
		return nil, nil, fmt.Errorf("%w: you can only sell up to %s %s",
			domain.ErrInsufficientHolding, target.AvailableAmount, target.Asset.Symbol)
	}

	quote, err := s.Quotes.Quote(ctx, target.Asset.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to price %s: %w", target.Asset.Symbol, err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.Repo.Get(ctx)
	if err != nil {
		return nil, nil, err
	}

	next, err := s.Ledger.Apply(*current, target.Order(amount, quote.Price))
	if err != nil {
		s.Log.WithFields(logrus.Fields{
			"asset":     target.Asset.Symbol,
			"direction": target.Direction(),
			"amount":    amount.String(),
			"error":     err,
		}).Info("trade rejected")
		return nil, nil, err
	}

	if err := s.Repo.Save(ctx, next); err != nil {
		return nil, nil, fmt.Errorf("failed to save wallet: %w", err)
	}

	tx := next.Log[0]
	s.Log.WithFields(logrus.Fields{
		"tx":        tx.ID.String(),
		"asset":     tx.Symbol,
		"direction": tx.Direction,
		"amount":    tx.Amount.String(),
		"total":     tx.Total.String(),
	}).Info("trade executed")

	return next, &tx, nil
}
