package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/cryptodash-backend/internal/domain"
)

// DefaultProfile is used for assets the catalog has no entry for
var DefaultProfile = domain.SeriesProfile{
	BasePrice:            100,
	HistoricalVolatility: 0.08,
	PredictionVolatility: 0.1,
}

type entry struct {
	asset     domain.Asset
	price     string
	change24h float64
	marketCap int64
	volume    int64
}

// Static is the built-in reference data set: supported assets, fallback
// market rows, exchange rates and the sample news feed. Every call returns
// fresh copies, so a Static can be shared freely.
type Static struct {
	entries []entry
	rates   map[string]decimal.Decimal
	news    []domain.NewsArticle
}

// NewStatic builds the default catalog
func NewStatic() *Static {
	s := &Static{
		entries: []entry{
			{domain.Asset{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin", Rank: 1}, "57320.42", 2.5, 1075000000000, 42000000000},
			{domain.Asset{ID: "ethereum", Symbol: "ETH", Name: "Ethereum", Rank: 2}, "3120.15", -0.8, 375000000000, 20000000000},
			{domain.Asset{ID: "solana", Symbol: "SOL", Name: "Solana", Rank: 3}, "124.32", 5.2, 50000000000, 3000000000},
			{domain.Asset{ID: "ripple", Symbol: "XRP", Name: "Ripple", Rank: 4}, "0.542", 1.3, 25000000000, 2000000000},
			{domain.Asset{ID: "cardano", Symbol: "ADA", Name: "Cardano", Rank: 5}, "0.39", -2.1, 18000000000, 1500000000},
			{domain.Asset{ID: "polkadot", Symbol: "DOT", Name: "Polkadot", Rank: 6}, "6.12", 0.4, 12000000000, 800000000},
			{domain.Asset{ID: "dogecoin", Symbol: "DOGE", Name: "Dogecoin", Rank: 7}, "0.12", 12.5, 10000000000, 2500000000},
			{domain.Asset{ID: "chainlink", Symbol: "LINK", Name: "Chainlink", Rank: 8}, "14.25", -1.6, 8000000000, 1000000000},
		},
		rates: map[string]decimal.Decimal{
			"USD":  decimal.RequireFromString("1"),
			"EUR":  decimal.RequireFromString("0.92"),
			"GBP":  decimal.RequireFromString("0.79"),
			"JPY":  decimal.RequireFromString("151.12"),
			"AUD":  decimal.RequireFromString("1.52"),
			"CAD":  decimal.RequireFromString("1.37"),
			"CHF":  decimal.RequireFromString("0.89"),
			"CNY":  decimal.RequireFromString("7.23"),
			"INR":  decimal.RequireFromString("83.42"),
			"BTC":  decimal.RequireFromString("0.000017"),
			"ETH":  decimal.RequireFromString("0.00032"),
			"SOL":  decimal.RequireFromString("0.0081"),
			"XRP":  decimal.RequireFromString("1.85"),
			"ADA":  decimal.RequireFromString("2.56"),
			"DOT":  decimal.RequireFromString("0.16"),
			"DOGE": decimal.RequireFromString("8.33"),
			"LINK": decimal.RequireFromString("0.07"),
		},
		news: sampleNews(),
	}
	sort.Slice(s.entries, func(i, j int) bool { return s.entries[i].asset.Rank < s.entries[j].asset.Rank })
	return s
}

// Assets lists supported assets ordered by rank
func (s *Static) Assets() []domain.Asset {
	out := make([]domain.Asset, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.asset)
	}
	return out
}

// Lookup resolves an asset by id ("bitcoin") or symbol ("btc")
func (s *Static) Lookup(idOrSymbol string) (domain.Asset, bool) {
	key := strings.TrimSpace(idOrSymbol)
	for _, e := range s.entries {
		if strings.EqualFold(e.asset.ID, key) || strings.EqualFold(e.asset.Symbol, key) {
			return e.asset, true
		}
	}
	return domain.Asset{}, false
}

// Fallback returns the static market row for an asset id
func (s *Static) Fallback(assetID string) (domain.MarketData, bool) {
	for _, e := range s.entries {
		if e.asset.ID == assetID {
			return domain.MarketData{
				Asset:     e.asset,
				Price:     decimal.RequireFromString(e.price),
				Change24h: e.change24h,
				MarketCap: decimal.NewFromInt(e.marketCap),
				Volume:    decimal.NewFromInt(e.volume),
			}, true
		}
	}
	return domain.MarketData{}, false
}

// Profile returns the generator inputs for an asset id
func (s *Static) Profile(assetID string) domain.SeriesProfile {
	row, ok := s.Fallback(assetID)
	if !ok {
		return DefaultProfile
	}

	profile := DefaultProfile
	profile.BasePrice = row.Price.InexactFloat64()
	switch assetID {
	case "bitcoin":
		profile.HistoricalVolatility, profile.PredictionVolatility = 0.03, 0.04
	case "ethereum":
		profile.HistoricalVolatility, profile.PredictionVolatility = 0.05, 0.06
	}
	return profile
}

// Rate returns units of code per USD
func (s *Static) Rate(code string) (decimal.Decimal, bool) {
	r, ok := s.rates[strings.ToUpper(strings.TrimSpace(code))]
	return r, ok
}

// Codes lists known currency codes, sorted
func (s *Static) Codes() []string {
	out := make([]string, 0, len(s.rates))
	for code := range s.rates {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// FiatCodes lists the fiat currencies offered by the converter
func (s *Static) FiatCodes() []string {
	return []string{"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "CHF", "CNY", "INR"}
}

// Articles returns the sample news feed
func (s *Static) Articles(_ context.Context) ([]domain.NewsArticle, error) {
	return append([]domain.NewsArticle(nil), s.news...), nil
}

// mustParseTime parses a fixed catalog timestamp and panics on a bad literal
func mustParseTime(layout, v string) time.Time {
	t, err := time.Parse(layout, v)
	if err != nil {
		panic(fmt.Sprintf("catalog: bad time %q: %v", v, err))
	}
	return t
}

func sampleNews() []domain.NewsArticle {
	ts := func(v string) time.Time { return mustParseTime(time.RFC3339, v) }
	return []domain.NewsArticle{
		{
			ID:          "n1",
			Title:       "Bitcoin Surges Above $57,000 as Institutional Interest Grows",
			Source:      "CryptoNews",
			PublishedAt: ts("2023-05-05T14:30:00Z"),
			Summary:     "Bitcoin hit a new monthly high as large institutions continue to invest in cryptocurrency assets.",
		},
		{
			ID:          "n2",
			Title:       "Ethereum Upgrade Coming Next Month, Promises Lower Gas Fees",
			Source:      "BlockchainDaily",
			PublishedAt: ts("2023-05-04T10:15:00Z"),
			Summary:     "The Ethereum network is preparing for a significant upgrade that aims to reduce transaction costs.",
		},
		{
			ID:          "n3",
			Title:       "Solana Becomes Third Largest Smart Contract Platform by DeFi TVL",
			Source:      "CryptoPanic",
			PublishedAt: ts("2023-05-03T16:45:00Z"),
			Summary:     "Solana has surpassed Binance Smart Chain to become the third largest blockchain by total value locked.",
		},
		{
			ID:          "n4",
			Title:       "New Regulatory Framework for Crypto Assets Proposed by SEC",
			Source:      "CoinTelegraph",
			PublishedAt: ts("2023-05-02T09:20:00Z"),
			Summary:     "The Securities and Exchange Commission has outlined new regulatory guidelines for cryptocurrency assets.",
		},
		{
			ID:          "n5",
			Title:       "Major Bank Launches Cryptocurrency Custody Service for Institutional Clients",
			Source:      "Bloomberg Crypto",
			PublishedAt: ts("2023-05-01T12:10:00Z"),
			Summary:     "One of the world's largest banks has announced a new service to help institutional clients store digital assets.",
		},
		{
			ID:          "n6",
			Title:       "NFT Collectible Sales Rebound as New Marketplaces Launch",
			Source:      "The Block",
			PublishedAt: ts("2023-04-30T08:00:00Z"),
			Summary:     "Trading volume for digital collectibles climbed for the third straight week.",
		},
		{
			ID:          "n7",
			Title:       "DeFi Yield Protocols Attract Record Liquidity",
			Source:      "DeFi Pulse",
			PublishedAt: ts("2023-04-29T18:25:00Z"),
			Summary:     "Swap volumes and liquidity pool deposits reached new highs across major protocols.",
		},
	}
}
