package dashboard

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simaogato/cryptodash-backend/internal/domain"
)

// Summary is the header of the wallet page
type Summary struct {
	PortfolioValue decimal.Decimal
	Cash           decimal.Decimal
	NetWorth       decimal.Decimal
	AssetCount     int
	BestPerformer  *Performer // nil when nothing held has market data
}

// Performer is a held asset with its 24h change
type Performer struct {
	Symbol    string
	Change24h float64
}

// MarketLister lists market rows; satisfied by *market.MarketService
type MarketLister interface {
	ListMarket(ctx context.Context) ([]domain.MarketData, error)
}

// DashboardService handles dashboard-related operations
type DashboardService struct {
	WalletRepo domain.WalletRepository
	Market     MarketLister
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(walletRepo domain.WalletRepository, market MarketLister) *DashboardService {
	return &DashboardService{
		WalletRepo: walletRepo,
		Market:     market,
	}
}

// Summary calculates the wallet header figures
// Logic:
//   - PortfolioValue: the portfolio's TotalValue
//   - NetWorth: PortfolioValue + Cash
//   - BestPerformer: highest 24h change among held assets
func (s *DashboardService) Summary(ctx context.Context) (*Summary, error) {
	w, err := s.WalletRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}

	rows, err := s.Market.ListMarket(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list market: %w", err)
	}

	var best *Performer
	for _, row := range rows {
		if _, held := w.Portfolio.Holding(row.Symbol); !held {
			continue
		}
		if best == nil || row.Change24h > best.Change24h {
			best = &Performer{Symbol: row.Symbol, Change24h: row.Change24h}
		}
	}

	return &Summary{
		PortfolioValue: w.Portfolio.TotalValue,
		Cash:           w.Cash,
		NetWorth:       w.NetWorth(),
		AssetCount:     len(w.Portfolio.Holdings),
		BestPerformer:  best,
	}, nil
}
