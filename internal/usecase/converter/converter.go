package converter

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/simaogato/cryptodash-backend/internal/domain"
)

// Conversion is the result of converting Amount of From into To
type Conversion struct {
	Amount decimal.Decimal
	From   string
	To     string
	Result decimal.Decimal
}

// Currency describes a fiat currency offered by the converter
type Currency struct {
	Code   string
	Symbol string // grapheme, e.g. "$"
}

// ConverterService converts between fiat and crypto currencies
type ConverterService struct {
	Rates domain.RateTable
}

// NewConverterService creates a new ConverterService instance
func NewConverterService(rates domain.RateTable) *ConverterService {
	return &ConverterService{Rates: rates}
}

// Convert converts amount of from into to
// Logic: rates are units per USD, so result = amount / rate(from) * rate(to)
func (s *ConverterService) Convert(amount decimal.Decimal, from, to string) (*Conversion, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount)
	}

	from = normalize(from)
	to = normalize(to)

	fromRate, err := s.rate(from)
	if err != nil {
		return nil, err
	}
	toRate, err := s.rate(to)
	if err != nil {
		return nil, err
	}

	return &Conversion{
		Amount: amount,
		From:   from,
		To:     to,
		Result: amount.Div(fromRate).Mul(toRate),
	}, nil
}

// Swap returns the reversed currency pair
func Swap(from, to string) (string, string) {
	return to, from
}

// Currencies lists every code the converter accepts, sorted
func (s *ConverterService) Currencies() []string {
	codes := append([]string(nil), s.Rates.Codes()...)
	sort.Strings(codes)
	return codes
}

// FiatCurrencies describes the given fiat codes using go-money's currency
// table. Codes go-money does not know are skipped.
func FiatCurrencies(codes []string) []Currency {
	out := make([]Currency, 0, len(codes))
	for _, code := range codes {
		c := money.GetCurrency(normalize(code))
		if c == nil {
			continue
		}
		out = append(out, Currency{Code: c.Code, Symbol: c.Grapheme})
	}
	return out
}

// FormatFiat renders amount in a fiat currency, e.g. "$1,234.56"
// Returns false for codes go-money does not know
func FormatFiat(amount decimal.Decimal, code string) (string, bool) {
	c := money.GetCurrency(normalize(code))
	if c == nil {
		return "", false
	}
	// minor units, rounded half away from zero
	minor := amount.Shift(int32(c.Fraction)).Round(0).IntPart()
	return money.New(minor, c.Code).Display(), true
}

func (s *ConverterService) rate(code string) (decimal.Decimal, error) {
	r, ok := s.Rates.Rate(code)
	if !ok || !r.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrUnknownCurrency, code)
	}
	return r, nil
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// LiveRates overlays crypto rates derived from live quotes on a base table.
// A coin priced at P USD is worth 1/P units per USD.
type LiveRates struct {
	Base  domain.RateTable
	rates map[string]decimal.Decimal
}

// Refresh rebuilds the overlay from quotes keyed by asset id
func Refresh(ctx context.Context, base domain.RateTable, source domain.MarketDataSource, catalog domain.MarketCatalog) (*LiveRates, error) {
	live := &LiveRates{Base: base, rates: map[string]decimal.Decimal{}}

	assets := catalog.Assets()
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.ID)
	}

	quotes, err := source.GetQuotes(ctx, ids)
	if err != nil {
		return live, fmt.Errorf("failed to refresh rates: %w", err)
	}
	for _, a := range assets {
		q, ok := quotes[a.ID]
		if !ok || !q.Price.IsPositive() {
			continue
		}
		live.rates[a.Symbol] = decimal.NewFromInt(1).Div(q.Price)
	}
	return live, nil
}

// Rate prefers the live overlay
func (l *LiveRates) Rate(code string) (decimal.Decimal, bool) {
	if r, ok := l.rates[normalize(code)]; ok {
		return r, true
	}
	return l.Base.Rate(code)
}

// Codes lists the base table codes plus any live-only codes
func (l *LiveRates) Codes() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, c := range l.Base.Codes() {
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for c := range l.rates {
		if _, ok := seen[c]; !ok {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
