package allocator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simaogato/cryptodash-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Tolerance is how far the percentage sum may drift from 100
var Tolerance = decimal.New(1, -6)

// CalculateAllocation recomputes every holding's percentage against total
// Returns a new slice; the input is not modified
// Logic:
//   - Percentage = Value / total * 100, for every holding (full pass)
//   - If total is not positive, every percentage is zero (no division)
func CalculateAllocation(total decimal.Decimal, holdings []domain.Holding) []domain.Holding {
	out := make([]domain.Holding, len(holdings))
	copy(out, holdings)

	if !total.IsPositive() {
		for i := range out {
			out[i].Percentage = decimal.Zero
		}
		return out
	}

	for i := range out {
		out[i].Percentage = out[i].Value.Div(total).Mul(hundred)
	}
	return out
}

// Rebalance sets TotalValue to the sum of holding values and recomputes
// percentages. Used when a snapshot arrives from outside the ledger.
func Rebalance(p domain.Portfolio) domain.Portfolio {
	total := p.SumValues()
	return domain.Portfolio{
		Holdings:   CalculateAllocation(total, p.Holdings),
		TotalValue: total,
	}
}

// Verify checks that percentages sum to 100 when the total is positive,
// and are all zero otherwise
func Verify(p domain.Portfolio) error {
	sum := decimal.Zero
	for _, h := range p.Holdings {
		sum = sum.Add(h.Percentage)
	}

	if !p.TotalValue.IsPositive() {
		if !sum.IsZero() {
			return errors.New("allocation must be zero when total value is not positive")
		}
		return nil
	}

	if len(p.Holdings) == 0 {
		return errors.New("positive total value with no holdings")
	}

	if sum.Sub(hundred).Abs().GreaterThan(Tolerance) {
		return fmt.Errorf("allocation sums to %s, want 100", sum)
	}
	return nil
}
