package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// WalletRepository holds the current wallet snapshot
type WalletRepository interface {
	// Get returns a copy of the current snapshot
	// Returns ErrNotFound if no wallet has been stored yet
	Get(ctx context.Context) (*Wallet, error)

	// Save replaces the current snapshot
	Save(ctx context.Context, wallet *Wallet) error
}

// MarketDataSource is a live price provider. Any method may fail or return
// partial results; callers fall back to the MarketCatalog.
type MarketDataSource interface {
	// GetQuotes returns a quote per asset id that the provider knows about
	GetQuotes(ctx context.Context, assetIDs []string) (map[string]Quote, error)

	// GetMarkets returns market rows keyed by asset id
	GetMarkets(ctx context.Context, assetIDs []string) (map[string]MarketData, error)

	// GetHistory returns daily prices for the last days, oldest first
	GetHistory(ctx context.Context, assetID string, days int) ([]PricePoint, error)
}

// MarketCatalog is static reference data and the fallback market table
type MarketCatalog interface {
	// Assets lists the supported assets ordered by rank
	Assets() []Asset

	// Lookup resolves an asset by id or symbol, case-insensitively
	Lookup(idOrSymbol string) (Asset, bool)

	// Fallback returns the static market row for an asset id
	Fallback(assetID string) (MarketData, bool)

	// Profile returns generator inputs for an asset id
	// Unknown ids get the default profile
	Profile(assetID string) SeriesProfile
}

// RateTable quotes every currency as units per US dollar
type RateTable interface {
	// Rate returns the units of code per USD
	Rate(code string) (decimal.Decimal, bool)

	// Codes lists the known currency codes
	Codes() []string
}

// NewsSource provides the articles shown in the news feed
type NewsSource interface {
	Articles(ctx context.Context) ([]NewsArticle, error)
}
