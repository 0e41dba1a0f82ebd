package market

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/simaogato/cryptodash-backend/internal/domain"
	"github.com/simaogato/cryptodash-backend/internal/usecase/series"
)

// MaxDays bounds the window of History and Prediction
const MaxDays = 365

// MarketService serves price cards, chart history and forecasts.
// Source may be nil, in which case everything comes from the catalog.
type MarketService struct {
	Source    domain.MarketDataSource
	Catalog   domain.MarketCatalog
	Generator *series.Generator
	Log       logrus.FieldLogger
	Now       func() time.Time
}

// NewMarketService creates a new MarketService instance
func NewMarketService(
	source domain.MarketDataSource,
	catalog domain.MarketCatalog,
	generator *series.Generator,
	log logrus.FieldLogger,
) *MarketService {
	return &MarketService{
		Source:    source,
		Catalog:   catalog,
		Generator: generator,
		Log:       log,
		Now:       time.Now,
	}
}

// Resolve maps an id or symbol onto a catalog asset
func (s *MarketService) Resolve(idOrSymbol string) (domain.Asset, error) {
	asset, ok := s.Catalog.Lookup(idOrSymbol)
	if !ok {
		return domain.Asset{}, fmt.Errorf("%w: %q", domain.ErrUnknownAsset, idOrSymbol)
	}
	return asset, nil
}

// ListMarket returns one row per catalog asset, ordered by rank
// Logic: live values where the source has them, catalog values otherwise.
// A failing source is logged and never surfaced.
func (s *MarketService) ListMarket(ctx context.Context) ([]domain.MarketData, error) {
	assets := s.Catalog.Assets()
	live := s.fetchMarkets(ctx, assets)

	rows := make([]domain.MarketData, 0, len(assets))
	for _, asset := range assets {
		fallback, _ := s.Catalog.Fallback(asset.ID)
		fallback.Asset = asset

		row, ok := live[asset.ID]
		if !ok {
			rows = append(rows, fallback)
			continue
		}

		// keep catalog identity and fill gaps field by field
		row.Asset = asset
		if row.MarketCap.IsZero() {
			row.MarketCap = fallback.MarketCap
			row.Live = false
		}
		if row.Volume.IsZero() {
			row.Volume = fallback.Volume
			row.Live = false
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Quote returns the current unit price for an asset, live when possible
func (s *MarketService) Quote(ctx context.Context, idOrSymbol string) (domain.Quote, error) {
	asset, err := s.Resolve(idOrSymbol)
	if err != nil {
		return domain.Quote{}, err
	}

	if s.Source != nil {
		quotes, err := s.Source.GetQuotes(ctx, []string{asset.ID})
		if err == nil {
			if q, ok := quotes[asset.ID]; ok && q.Price.IsPositive() {
				q.Symbol = asset.Symbol
				return q, nil
			}
		}
		s.Log.WithFields(logrus.Fields{"asset": asset.ID, "error": err}).Warn("live quote unavailable, using catalog price")
	}

	row, ok := s.Catalog.Fallback(asset.ID)
	if !ok {
		return domain.Quote{}, fmt.Errorf("no price for %s: %w", asset.ID, domain.ErrNotFound)
	}
	return domain.Quote{
		AssetID:   asset.ID,
		Symbol:    asset.Symbol,
		Price:     row.Price,
		Timestamp: s.Now(),
	}, nil
}

// History returns daily prices for the last days
// Logic: live history first; on error or empty result, a synthetic series
// built from the catalog profile
func (s *MarketService) History(ctx context.Context, idOrSymbol string, days int) ([]domain.PricePoint, error) {
	if err := checkDays(days); err != nil {
		return nil, err
	}
	asset, err := s.Resolve(idOrSymbol)
	if err != nil {
		return nil, err
	}

	if s.Source != nil && days > 0 {
		points, err := s.Source.GetHistory(ctx, asset.ID, days)
		if err == nil && len(points) > 0 {
			return points, nil
		}
		s.Log.WithFields(logrus.Fields{"asset": asset.ID, "days": days, "error": err}).
			Warn("live history unavailable, generating series")
	}

	profile := s.Catalog.Profile(asset.ID)
	return s.Generator.Historical(profile.BasePrice, profile.HistoricalVolatility, days)
}

// Prediction returns a forecast for the next days, anchored on the current
// price
func (s *MarketService) Prediction(ctx context.Context, idOrSymbol string, days int) ([]domain.PredictionPoint, error) {
	if err := checkDays(days); err != nil {
		return nil, err
	}
	asset, err := s.Resolve(idOrSymbol)
	if err != nil {
		return nil, err
	}

	profile := s.Catalog.Profile(asset.ID)
	if q, err := s.Quote(ctx, asset.ID); err == nil {
		profile.BasePrice = q.Price.InexactFloat64()
	}
	return s.Generator.Prediction(profile.BasePrice, profile.PredictionVolatility, days)
}

func checkDays(days int) error {
	switch {
	case days < 0:
		return fmt.Errorf("%w: days must not be negative", domain.ErrInvalidParameters)
	case days > MaxDays:
		return fmt.Errorf("%w: days must be at most %d", domain.ErrInvalidParameters, MaxDays)
	}
	return nil
}

func (s *MarketService) fetchMarkets(ctx context.Context, assets []domain.Asset) map[string]domain.MarketData {
	if s.Source == nil {
		return nil
	}

	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.ID)
	}

	live, err := s.Source.GetMarkets(ctx, ids)
	if err != nil {
		s.Log.WithError(err).Warn("live market data unavailable, using catalog")
		return nil
	}
	if len(live) < len(ids) {
		s.Log.WithFields(logrus.Fields{"requested": len(ids), "received": len(live)}).
			Info("partial market data, filling from catalog")
	}
	return live
}
