package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPortfolio_Validate(t *testing.T) {
	tests := []struct {
		name      string
		portfolio Portfolio
		wantErr   bool
		errMsg    string
	}{
		{
			name: "Valid portfolio should pass",
			portfolio: Portfolio{Holdings: []Holding{
				{Symbol: "BTC", Amount: decimal.NewFromFloat(0.5), Value: decimal.NewFromInt(17000)},
				{Symbol: "ETH", Amount: decimal.NewFromInt(2), Value: decimal.NewFromInt(3600)},
			}},
		},
		{
			name:      "Empty portfolio should pass",
			portfolio: Portfolio{},
		},
		{
			name: "Duplicate symbol should fail",
			portfolio: Portfolio{Holdings: []Holding{
				{Symbol: "BTC", Amount: decimal.NewFromInt(1), Value: decimal.NewFromInt(1)},
				{Symbol: "BTC", Amount: decimal.NewFromInt(1), Value: decimal.NewFromInt(1)},
			}},
			wantErr: true,
			errMsg:  "duplicate holding for BTC",
		},
		{
			name: "Zero amount should fail",
			portfolio: Portfolio{Holdings: []Holding{
				{Symbol: "SOL", Amount: decimal.Zero, Value: decimal.Zero},
			}},
			wantErr: true,
			errMsg:  "holding SOL must have a positive amount",
		},
		{
			name: "Negative value should fail",
			portfolio: Portfolio{Holdings: []Holding{
				{Symbol: "ADA", Amount: decimal.NewFromInt(1), Value: decimal.NewFromInt(-1)},
			}},
			wantErr: true,
			errMsg:  "holding ADA must not have a negative value",
		},
		{
			name: "Empty symbol should fail",
			portfolio: Portfolio{Holdings: []Holding{
				{Amount: decimal.NewFromInt(1)},
			}},
			wantErr: true,
			errMsg:  "holding symbol cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.portfolio.Validate()
			if tt.wantErr {
				assert.EqualError(t, err, tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPortfolio_FindAndSum(t *testing.T) {
	p := Portfolio{Holdings: []Holding{
		{Symbol: "BTC", Amount: decimal.NewFromFloat(0.5), Value: decimal.NewFromInt(17000)},
		{Symbol: "ETH", Amount: decimal.NewFromInt(2), Value: decimal.NewFromFloat(3600.5)},
	}}

	assert.Equal(t, 1, p.Find("ETH"))
	assert.Equal(t, -1, p.Find("DOGE"))

	h, ok := p.Holding("BTC")
	assert.True(t, ok)
	assert.Equal(t, "BTC", h.Symbol)

	_, ok = p.Holding("DOGE")
	assert.False(t, ok)

	assert.True(t, p.SumValues().Equal(decimal.NewFromFloat(20600.5)))
}

func TestPortfolio_Clone(t *testing.T) {
	p := Portfolio{
		Holdings:   []Holding{{Symbol: "BTC", Amount: decimal.NewFromInt(1)}},
		TotalValue: decimal.NewFromInt(100),
	}

	c := p.Clone()
	c.Holdings[0].Amount = decimal.NewFromInt(5)
	c.Holdings = append(c.Holdings, Holding{Symbol: "ETH"})

	assert.True(t, p.Holdings[0].Amount.Equal(decimal.NewFromInt(1)))
	assert.Len(t, p.Holdings, 1)
	assert.True(t, c.TotalValue.Equal(p.TotalValue))
}
