package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWallet_NetWorth(t *testing.T) {
	w := Wallet{
		Portfolio: Portfolio{TotalValue: decimal.NewFromFloat(15420.35)},
		Cash:      decimal.NewFromInt(10000),
	}
	assert.True(t, w.NetWorth().Equal(decimal.NewFromFloat(25420.35)))
}

func TestWallet_Clone(t *testing.T) {
	w := Wallet{
		Portfolio: Portfolio{Holdings: []Holding{{Symbol: "BTC", Amount: decimal.NewFromInt(1)}}},
		Cash:      decimal.NewFromInt(10),
		Log:       TransactionLog{{ID: uuid.New(), Symbol: "BTC"}},
	}

	c := w.Clone()
	c.Portfolio.Holdings[0].Symbol = "ETH"
	c.Log[0].Symbol = "ETH"

	assert.Equal(t, "BTC", w.Portfolio.Holdings[0].Symbol)
	assert.Equal(t, "BTC", w.Log[0].Symbol)
}

func TestTradeTarget(t *testing.T) {
	btc := Asset{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin"}

	t.Run("Buy target has no available amount", func(t *testing.T) {
		target := NewBuyTarget(btc)
		assert.Equal(t, TradeKindBuy, target.Kind)
		assert.Equal(t, DirectionBuy, target.Direction())
		assert.True(t, target.AvailableAmount.IsZero())
	})

	t.Run("Sell target carries the held amount", func(t *testing.T) {
		target := NewSellTarget(btc, decimal.NewFromFloat(0.45))
		assert.Equal(t, TradeKindSell, target.Kind)
		assert.Equal(t, DirectionSell, target.Direction())
		assert.True(t, target.AvailableAmount.Equal(decimal.NewFromFloat(0.45)))
	})

	t.Run("Order copies asset amount and price", func(t *testing.T) {
		order := NewSellTarget(btc, decimal.NewFromInt(1)).Order(decimal.NewFromFloat(0.1), decimal.NewFromInt(35000))
		assert.Equal(t, DirectionSell, order.Direction)
		assert.Equal(t, btc, order.Asset)
		assert.True(t, order.Total().Equal(decimal.NewFromInt(3500)))
		assert.NoError(t, order.Validate())
	})
}

func TestPredictionPoint_BandWidth(t *testing.T) {
	p := PredictionPoint{Prediction: 100, LowerBound: 95, UpperBound: 105}
	assert.InDelta(t, 10.0, p.BandWidth(), 1e-9)
}
