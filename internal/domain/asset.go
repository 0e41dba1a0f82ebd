package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is immutable reference data for a tradable coin
type Asset struct {
	ID     string // catalog id, e.g. "bitcoin"
	Symbol string // ticker, e.g. "BTC"
	Name   string
	Rank   int
}

// Quote is a unit price observed for an asset at a point in time
type Quote struct {
	AssetID   string
	Symbol    string
	Price     decimal.Decimal
	Timestamp time.Time
}

// MarketData is the row shown on a price card
type MarketData struct {
	Asset
	Price     decimal.Decimal
	Change24h float64 // percent
	MarketCap decimal.Decimal
	Volume    decimal.Decimal
	ImageURL  string
	Live      bool // false when any field came from the fallback catalog
}

// SeriesProfile holds the generator inputs used when no live history exists
type SeriesProfile struct {
	BasePrice            float64
	HistoricalVolatility float64
	PredictionVolatility float64
}
