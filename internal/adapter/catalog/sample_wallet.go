package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/cryptodash-backend/internal/domain"
)

// Fixed ids for the sample transactions so reseeding is stable
var (
	SampleTx1 = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	SampleTx2 = uuid.MustParse("00000000-0000-0000-0000-0000000000a2")
	SampleTx3 = uuid.MustParse("00000000-0000-0000-0000-0000000000a3")
	SampleTx4 = uuid.MustParse("00000000-0000-0000-0000-0000000000a4")
	SampleTx5 = uuid.MustParse("00000000-0000-0000-0000-0000000000a5")
)

// SampleWallet is the demo wallet a fresh session starts from. TotalValue
// and percentages are left zero; the seeder derives them from the holdings.
func (s *Static) SampleWallet(cash decimal.Decimal) domain.Wallet {
	d := decimal.RequireFromString
	day := func(v string) time.Time { return mustParseTime(time.DateOnly, v) }
	tx := func(id uuid.UUID, date string, dir domain.Direction, amount, symbol, price, total string) domain.Transaction {
		return domain.Transaction{
			ID:        id,
			Date:      day(date),
			Direction: dir,
			Symbol:    symbol,
			Amount:    d(amount),
			Price:     d(price),
			Total:     d(total),
		}
	}

	return domain.Wallet{
		Portfolio: domain.Portfolio{
			Holdings: []domain.Holding{
				{Symbol: "BTC", Name: "Bitcoin", Amount: d("0.18"), Value: d("10317.68")},
				{Symbol: "ETH", Name: "Ethereum", Amount: d("1.25"), Value: d("3900.19")},
				{Symbol: "SOL", Name: "Solana", Amount: d("5.5"), Value: d("683.76")},
				{Symbol: "XRP", Name: "Ripple", Amount: d("250"), Value: d("135.50")},
				{Symbol: "ADA", Name: "Cardano", Amount: d("750"), Value: d("292.50")},
				{Symbol: "DOT", Name: "Polkadot", Amount: d("15"), Value: d("91.80")},
			},
		},
		Cash: cash,
		Log: domain.TransactionLog{
			tx(SampleTx1, "2023-05-02", domain.DirectionBuy, "0.05", "BTC", "56420.15", "2821.01"),
			tx(SampleTx2, "2023-04-28", domain.DirectionBuy, "0.75", "ETH", "2980.25", "2235.19"),
			tx(SampleTx3, "2023-04-25", domain.DirectionSell, "0.02", "BTC", "55210.40", "1104.21"),
			tx(SampleTx4, "2023-04-20", domain.DirectionBuy, "5.5", "SOL", "118.75", "653.13"),
			tx(SampleTx5, "2023-04-15", domain.DirectionBuy, "250", "XRP", "0.52", "130.00"),
		},
	}
}
