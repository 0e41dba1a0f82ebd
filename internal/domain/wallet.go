package domain

import (
	"github.com/shopspring/decimal"
)

// Wallet is a complete snapshot: holdings, spendable cash and trade history.
// Snapshots are replaced, never patched in place.
type Wallet struct {
	Portfolio Portfolio
	Cash      decimal.Decimal
	Log       TransactionLog
}

// NetWorth is the portfolio value plus cash
func (w Wallet) NetWorth() decimal.Decimal {
	return w.Portfolio.TotalValue.Add(w.Cash)
}

// Clone deep-copies the slices held by the snapshot
func (w Wallet) Clone() Wallet {
	return Wallet{
		Portfolio: w.Portfolio.Clone(),
		Cash:      w.Cash,
		Log:       append(TransactionLog(nil), w.Log...),
	}
}

// TradeKind tags a TradeTarget variant
type TradeKind int

const (
	TradeKindBuy TradeKind = iota + 1
	TradeKindSell
)

// TradeTarget is what the user picked to trade. A sell target also carries
// how much of the asset is available, a buy target does not.
type TradeTarget struct {
	Kind            TradeKind
	Asset           Asset
	AvailableAmount decimal.Decimal // only meaningful for TradeKindSell
}

// NewBuyTarget builds the buy variant
func NewBuyTarget(asset Asset) TradeTarget {
	return TradeTarget{Kind: TradeKindBuy, Asset: asset}
}

// NewSellTarget builds the sell variant
func NewSellTarget(asset Asset, available decimal.Decimal) TradeTarget {
	return TradeTarget{Kind: TradeKindSell, Asset: asset, AvailableAmount: available}
}

// Direction maps the variant onto a trade side
func (t TradeTarget) Direction() Direction {
	if t.Kind == TradeKindSell {
		return DirectionSell
	}
	return DirectionBuy
}

// Order builds the ledger order for this target
func (t TradeTarget) Order(amount, price decimal.Decimal) Order {
	return Order{
		Direction: t.Direction(),
		Asset:     t.Asset,
		Amount:    amount,
		Price:     price,
	}
}
