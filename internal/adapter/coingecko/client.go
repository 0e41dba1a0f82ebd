package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/cryptodash-backend/internal/domain"
)

// DefaultBaseURL is the public CoinGecko v3 API
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Config configures the CoinGecko client
type Config struct {
	BaseURL string
	Timeout time.Duration
	Retries int
}

// Client implements domain.MarketDataSource against CoinGecko
type Client struct {
	http *resty.Client
	log  logrus.FieldLogger
	now  func() time.Time
}

var _ domain.MarketDataSource = (*Client)(nil)

// marketRow mirrors one element of /coins/markets
type marketRow struct {
	ID                       string              `json:"id"`
	Symbol                   string              `json:"symbol"`
	Name                     string              `json:"name"`
	Image                    string              `json:"image"`
	CurrentPrice             decimal.NullDecimal `json:"current_price"`
	MarketCap                decimal.NullDecimal `json:"market_cap"`
	MarketCapRank            int                 `json:"market_cap_rank"`
	TotalVolume              decimal.NullDecimal `json:"total_volume"`
	PriceChangePercentage24h *float64            `json:"price_change_percentage_24h"`
}

// marketChart mirrors /coins/{id}/market_chart
type marketChart struct {
	Prices [][2]float64 `json:"prices"`
}

// NewClient creates a CoinGecko client
func NewClient(cfg Config, log logrus.FieldLogger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	client.SetTimeout(cfg.Timeout)
	client.SetHeader("Accept", "application/json")
	client.SetRetryCount(cfg.Retries)
	client.SetRetryWaitTime(500 * time.Millisecond)
	client.SetRetryMaxWaitTime(5 * time.Second)
	client.AddRetryCondition(func(resp *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= 500
	})

	return &Client{
		http: client,
		log:  log.WithField("component", "coingecko"),
		now:  time.Now,
	}
}

// GetMarkets fetches market rows for the given ids
func (c *Client) GetMarkets(ctx context.Context, assetIDs []string) (map[string]domain.MarketData, error) {
	if len(assetIDs) == 0 {
		return map[string]domain.MarketData{}, nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"vs_currency":             "usd",
			"ids":                     strings.Join(assetIDs, ","),
			"order":                   "market_cap_desc",
			"per_page":                "100",
			"page":                    "1",
			"sparkline":               "false",
			"price_change_percentage": "24h",
		}).
		Get("/coins/markets")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch markets: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("coingecko markets: API error %d: %s", resp.StatusCode(), resp.String())
	}

	var rows []marketRow
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("failed to parse markets response: %w", err)
	}

	out := make(map[string]domain.MarketData, len(rows))
	for _, row := range rows {
		if !row.CurrentPrice.Valid || !row.CurrentPrice.Decimal.IsPositive() {
			c.log.WithField("asset", row.ID).Debug("skipping market row without a price")
			continue
		}
		md := domain.MarketData{
			Asset: domain.Asset{
				ID:     row.ID,
				Symbol: strings.ToUpper(row.Symbol),
				Name:   row.Name,
				Rank:   row.MarketCapRank,
			},
			Price:    row.CurrentPrice.Decimal,
			ImageURL: row.Image,
			Live:     true,
		}
		if row.MarketCap.Valid {
			md.MarketCap = row.MarketCap.Decimal
		}
		if row.TotalVolume.Valid {
			md.Volume = row.TotalVolume.Decimal
		}
		if row.PriceChangePercentage24h != nil {
			md.Change24h = *row.PriceChangePercentage24h
		}
		out[row.ID] = md
	}

	c.log.WithFields(logrus.Fields{"requested": len(assetIDs), "received": len(out)}).Debug("fetched markets")
	return out, nil
}

// GetQuotes derives quotes from the markets endpoint
func (c *Client) GetQuotes(ctx context.Context, assetIDs []string) (map[string]domain.Quote, error) {
	markets, err := c.GetMarkets(ctx, assetIDs)
	if err != nil {
		return nil, err
	}

	now := c.now()
	quotes := make(map[string]domain.Quote, len(markets))
	for id, md := range markets {
		quotes[id] = domain.Quote{
			AssetID:   id,
			Symbol:    md.Symbol,
			Price:     md.Price,
			Timestamp: now,
		}
	}
	return quotes, nil
}

// GetHistory fetches daily USD prices for the last days
func (c *Client) GetHistory(ctx context.Context, assetID string, days int) ([]domain.PricePoint, error) {
	if assetID == "" {
		return nil, errors.New("asset id cannot be empty")
	}
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive, got %d", domain.ErrInvalidParameters, days)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", assetID).
		SetQueryParams(map[string]string{
			"vs_currency": "usd",
			"days":        strconv.Itoa(days),
			"interval":    "daily",
		}).
		Get("/coins/{id}/market_chart")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", assetID, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAsset, assetID)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("coingecko history: API error %d: %s", resp.StatusCode(), resp.String())
	}

	var chart marketChart
	if err := json.Unmarshal(resp.Body(), &chart); err != nil {
		return nil, fmt.Errorf("failed to parse history response: %w", err)
	}

	points := make([]domain.PricePoint, 0, len(chart.Prices))
	for _, p := range chart.Prices {
		points = append(points, domain.PricePoint{
			Timestamp: time.UnixMilli(int64(p[0])).UTC(),
			Price:     p[1],
		})
	}
	return points, nil
}
