package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction is the side of a trade
type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
)

// ParseDirection accepts "buy"/"sell" in any case
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToUpper(strings.TrimSpace(s))) {
	case DirectionBuy:
		return DirectionBuy, nil
	case DirectionSell:
		return DirectionSell, nil
	}
	return "", fmt.Errorf("%w: direction must be BUY or SELL, got %q", ErrInvalidParameters, s)
}

// AmountFromFloat converts a user-entered quantity, rejecting NaN, infinities
// and non-positive values
func AmountFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return decimal.Zero, fmt.Errorf("%w: must be a finite positive number, got %v", ErrInvalidAmount, f)
	}
	return decimal.NewFromFloat(f), nil
}

// Order is a trade request before the ledger accepts it
type Order struct {
	Direction Direction
	Asset     Asset
	Amount    decimal.Decimal
	Price     decimal.Decimal // unit price at execution
}

// Total is Amount x Price
func (o Order) Total() decimal.Decimal {
	return o.Amount.Mul(o.Price)
}

// Validate checks the order fields that do not depend on wallet state
func (o Order) Validate() error {
	if o.Direction != DirectionBuy && o.Direction != DirectionSell {
		return fmt.Errorf("%w: direction must be BUY or SELL", ErrInvalidParameters)
	}
	if o.Asset.Symbol == "" {
		return fmt.Errorf("%w: order asset symbol cannot be empty", ErrInvalidParameters)
	}
	if !o.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidAmount, o.Amount)
	}
	if !o.Price.IsPositive() {
		return fmt.Errorf("%w: unit price must be positive, got %s", ErrInvalidAmount, o.Price)
	}
	return nil
}

// Transaction is an executed trade. Never edited once logged.
type Transaction struct {
	ID        uuid.UUID
	Date      time.Time
	Direction Direction
	Symbol    string
	Amount    decimal.Decimal
	Price     decimal.Decimal
	Total     decimal.Decimal // Amount x Price
}

// TransactionLog is ordered newest first
type TransactionLog []Transaction

// Prepend returns a new log with tx at the front; l is left untouched
func (l TransactionLog) Prepend(tx Transaction) TransactionLog {
	out := make(TransactionLog, 0, len(l)+1)
	out = append(out, tx)
	return append(out, l...)
}

// Latest returns at most n entries from the front of the log
func (l TransactionLog) Latest(n int) TransactionLog {
	if n <= 0 || n >= len(l) {
		return append(TransactionLog(nil), l...)
	}
	return append(TransactionLog(nil), l[:n]...)
}
