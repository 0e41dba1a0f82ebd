package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Holding represents a portfolio's position in one asset
type Holding struct {
	Symbol     string
	Name       string
	Amount     decimal.Decimal // Units held, never negative
	Value      decimal.Decimal // Amount x last known unit price
	Percentage decimal.Decimal // Value / Portfolio.TotalValue * 100
}

// Portfolio is an ordered collection of holdings keyed by symbol
type Portfolio struct {
	Holdings   []Holding
	TotalValue decimal.Decimal
}

// Validate ensures the portfolio adheres to domain rules
// CRITICAL: symbols are unique and amounts are positive
func (p *Portfolio) Validate() error {
	seen := make(map[string]struct{}, len(p.Holdings))
	for _, h := range p.Holdings {
		if h.Symbol == "" {
			return errors.New("holding symbol cannot be empty")
		}
		if _, dup := seen[h.Symbol]; dup {
			return fmt.Errorf("duplicate holding for %s", h.Symbol)
		}
		seen[h.Symbol] = struct{}{}

		if !h.Amount.IsPositive() {
			return fmt.Errorf("holding %s must have a positive amount", h.Symbol)
		}
		if h.Value.IsNegative() {
			return fmt.Errorf("holding %s must not have a negative value", h.Symbol)
		}
	}
	return nil
}

// Find returns the index of the holding for symbol, or -1
func (p *Portfolio) Find(symbol string) int {
	for i := range p.Holdings {
		if p.Holdings[i].Symbol == symbol {
			return i
		}
	}
	return -1
}

// Holding returns the holding for symbol if present
func (p *Portfolio) Holding(symbol string) (Holding, bool) {
	if i := p.Find(symbol); i >= 0 {
		return p.Holdings[i], true
	}
	return Holding{}, false
}

// SumValues adds up the value of every holding
func (p *Portfolio) SumValues() decimal.Decimal {
	total := decimal.Zero
	for _, h := range p.Holdings {
		total = total.Add(h.Value)
	}
	return total
}

// Clone returns a copy that shares no backing array with p
func (p Portfolio) Clone() Portfolio {
	holdings := make([]Holding, len(p.Holdings))
	copy(holdings, p.Holdings)
	return Portfolio{Holdings: holdings, TotalValue: p.TotalValue}
}
