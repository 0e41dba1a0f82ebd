package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/cryptodash-backend/internal/domain"
	"github.com/simaogato/cryptodash-backend/internal/usecase/allocator"
)

// Epsilon is the remaining amount below which a sold-down holding is removed
var Epsilon = decimal.New(1, -8)

// Ledger applies buy/sell orders to wallet snapshots.
// It holds no wallet state; callers own the current snapshot and must
// serialize Apply calls that start from the same one.
type Ledger struct {
	Now   func() time.Time
	NewID func() uuid.UUID
}

// NewLedger creates a Ledger using the wall clock and random uuids
func NewLedger() *Ledger {
	return &Ledger{
		Now:   time.Now,
		NewID: uuid.New,
	}
}

// Apply validates order against wallet and returns the resulting snapshot.
// On error the returned snapshot is nil and wallet is unchanged.
// Logic:
//   - BUY:  holding amount += a, value += total, TotalValue += total, Cash -= total
//   - SELL: holding amount -= a, value -= total, Cash += total
//     if the remaining amount is <= Epsilon the holding is removed and its
//     full prior value leaves TotalValue, otherwise TotalValue -= total
//   - Percentages are recomputed for every holding
//   - The transaction is prepended to the log
func (l *Ledger) Apply(wallet domain.Wallet, order domain.Order) (*domain.Wallet, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	total := order.Total()
	portfolio := wallet.Portfolio.Clone()
	idx := portfolio.Find(order.Asset.Symbol)

	var newTotal, newCash decimal.Decimal

	switch order.Direction {
	case domain.DirectionBuy:
		if wallet.Cash.LessThan(total) {
			return nil, fmt.Errorf("%w: need %s, have %s", domain.ErrInsufficientCash, total, wallet.Cash)
		}

		if idx >= 0 {
			h := &portfolio.Holdings[idx]
			h.Amount = h.Amount.Add(order.Amount)
			h.Value = h.Value.Add(total)
		} else {
			portfolio.Holdings = append(portfolio.Holdings, domain.Holding{
				Symbol: order.Asset.Symbol,
				Name:   order.Asset.Name,
				Amount: order.Amount,
				Value:  total,
			})
		}
		newTotal = wallet.Portfolio.TotalValue.Add(total)
		newCash = wallet.Cash.Sub(total)

	case domain.DirectionSell:
		if idx < 0 {
			return nil, fmt.Errorf("%w: no %s held", domain.ErrInsufficientHolding, order.Asset.Symbol)
		}
		prior := portfolio.Holdings[idx]
		if prior.Amount.LessThan(order.Amount) {
			return nil, fmt.Errorf("%w: selling %s %s, holding %s",
				domain.ErrInsufficientHolding, order.Amount, order.Asset.Symbol, prior.Amount)
		}

		remaining := prior.Amount.Sub(order.Amount)
		if remaining.LessThanOrEqual(Epsilon) {
			portfolio.Holdings = append(portfolio.Holdings[:idx], portfolio.Holdings[idx+1:]...)
			newTotal = wallet.Portfolio.TotalValue.Sub(prior.Value)
		} else {
			h := &portfolio.Holdings[idx]
			h.Amount = remaining
			h.Value = prior.Value.Sub(total)
			newTotal = wallet.Portfolio.TotalValue.Sub(total)
		}
		newCash = wallet.Cash.Add(total)
	}

	portfolio.TotalValue = newTotal
	portfolio.Holdings = allocator.CalculateAllocation(newTotal, portfolio.Holdings)

	tx := domain.Transaction{
		ID:        l.NewID(),
		Date:      l.Now(),
		Direction: order.Direction,
		Symbol:    order.Asset.Symbol,
		Amount:    order.Amount,
		Price:     order.Price,
		Total:     total,
	}

	return &domain.Wallet{
		Portfolio: portfolio,
		Cash:      newCash,
		Log:       wallet.Log.Prepend(tx),
	}, nil
}
