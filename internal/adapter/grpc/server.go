package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/cryptodash-backend/internal/domain"
	"github.com/simaogato/cryptodash-backend/internal/usecase/converter"
	"github.com/simaogato/cryptodash-backend/internal/usecase/dashboard"
	"github.com/simaogato/cryptodash-backend/internal/usecase/market"
	"github.com/simaogato/cryptodash-backend/internal/usecase/news"
	"github.com/simaogato/cryptodash-backend/internal/usecase/wallet"
)

const (
	defaultHistoryDays    = 30
	defaultPredictionDays = 14
)

// Server implements DashboardServiceServer on top of the use cases
type Server struct {
	MarketService    *market.MarketService
	ConverterService *converter.ConverterService
	NewsService      *news.NewsService
	WalletService    *wallet.WalletService
	DashboardService *dashboard.DashboardService
}

var _ DashboardServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(
	marketService *market.MarketService,
	converterService *converter.ConverterService,
	newsService *news.NewsService,
	walletService *wallet.WalletService,
	dashboardService *dashboard.DashboardService,
) *Server {
	return &Server{
		MarketService:    marketService,
		ConverterService: converterService,
		NewsService:      newsService,
		WalletService:    walletService,
		DashboardService: dashboardService,
	}
}

// ListMarket handles the ListMarket RPC
func (s *Server) ListMarket(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	rows, err := s.MarketService.ListMarket(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	items := make([]interface{}, 0, len(rows))
	for _, r := range rows {
		items = append(items, map[string]interface{}{
			"id":         r.ID,
			"symbol":     r.Symbol,
			"name":       r.Name,
			"rank":       r.Rank,
			"price":      r.Price.String(),
			"change_24h": r.Change24h,
			"market_cap": r.MarketCap.String(),
			"volume":     r.Volume.String(),
			"image":      r.ImageURL,
			"live":       r.Live,
		})
	}
	return respond(map[string]interface{}{"assets": items})
}

// GetHistory handles the GetHistory RPC
// Request: {"asset": "BTC", "days": 30}
func (s *Server) GetHistory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	asset, err := requireString(req, "asset")
	if err != nil {
		return nil, err
	}
	days, err := optionalInt(req, "days", defaultHistoryDays)
	if err != nil {
		return nil, err
	}

	points, err := s.MarketService.History(ctx, asset, days)
	if err != nil {
		return nil, mapError(err)
	}

	items := make([]interface{}, 0, len(points))
	for _, p := range points {
		items = append(items, map[string]interface{}{
			"timestamp": p.Timestamp.UTC().Format(time.RFC3339),
			"price":     p.Price,
		})
	}
	return respond(map[string]interface{}{"points": items})
}

// GetPrediction handles the GetPrediction RPC
// Request: {"asset": "BTC", "days": 14}
func (s *Server) GetPrediction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	asset, err := requireString(req, "asset")
	if err != nil {
		return nil, err
	}
	days, err := optionalInt(req, "days", defaultPredictionDays)
	if err != nil {
		return nil, err
	}

	points, err := s.MarketService.Prediction(ctx, asset, days)
	if err != nil {
		return nil, mapError(err)
	}

	items := make([]interface{}, 0, len(points))
	for _, p := range points {
		items = append(items, map[string]interface{}{
			"date":        p.Date.Format(time.DateOnly),
			"prediction":  p.Prediction,
			"lower_bound": p.LowerBound,
			"upper_bound": p.UpperBound,
		})
	}
	return respond(map[string]interface{}{"points": items})
}

// Convert handles the Convert RPC
// Request: {"amount": "1.5", "from": "BTC", "to": "EUR"}
func (s *Server) Convert(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	amount, err := requireDecimal(req, "amount")
	if err != nil {
		return nil, err
	}
	from, err := requireString(req, "from")
	if err != nil {
		return nil, err
	}
	to, err := requireString(req, "to")
	if err != nil {
		return nil, err
	}

	conv, err := s.ConverterService.Convert(amount, from, to)
	if err != nil {
		return nil, mapError(err)
	}
	return respond(map[string]interface{}{
		"amount": conv.Amount.String(),
		"from":   conv.From,
		"to":     conv.To,
		"result": conv.Result.String(),
	})
}

// SearchNews handles the SearchNews RPC
// Request: {"query": "bitcoin", "category": "all"}
func (s *Server) SearchNews(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	articles, err := s.NewsService.Search(ctx, stringField(req, "query"), stringField(req, "category"))
	if err != nil {
		return nil, mapError(err)
	}

	items := make([]interface{}, 0, len(articles))
	for _, a := range articles {
		items = append(items, map[string]interface{}{
			"id":           a.ID,
			"title":        a.Title,
			"url":          a.URL,
			"source":       a.Source,
			"image":        a.ImageURL,
			"published_at": a.PublishedAt.UTC().Format(time.RFC3339),
			"summary":      a.Summary,
		})
	}
	return respond(map[string]interface{}{"articles": items})
}

// GetWallet handles the GetWallet RPC
// Request: {"limit": 10} limits the transaction list
func (s *Server) GetWallet(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	limit, err := optionalInt(req, "limit", 0)
	if err != nil {
		return nil, err
	}

	w, err := s.WalletService.Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	body := walletFields(w)
	body["transactions"] = transactionList(w.Log.Latest(limit))
	return respond(body)
}

// ExecuteTrade handles the ExecuteTrade RPC
// Request: {"direction": "buy", "asset": "BTC", "amount": "0.1"}
func (s *Server) ExecuteTrade(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	dirStr, err := requireString(req, "direction")
	if err != nil {
		return nil, err
	}
	direction, err := domain.ParseDirection(dirStr)
	if err != nil {
		return nil, mapError(err)
	}
	asset, err := requireString(req, "asset")
	if err != nil {
		return nil, err
	}
	amount, err := requireDecimal(req, "amount")
	if err != nil {
		return nil, err
	}

	target, err := s.WalletService.Target(ctx, direction, asset)
	if err != nil {
		return nil, mapError(err)
	}
	w, tx, err := s.WalletService.Execute(ctx, target, amount)
	if err != nil {
		return nil, mapError(err)
	}

	body := walletFields(w)
	body["transaction"] = transactionFields(*tx)
	return respond(body)
}

// GetSummary handles the GetSummary RPC
func (s *Server) GetSummary(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	sum, err := s.DashboardService.Summary(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	body := map[string]interface{}{
		"portfolio_value": sum.PortfolioValue.String(),
		"cash":            sum.Cash.String(),
		"net_worth":       sum.NetWorth.String(),
		"asset_count":     sum.AssetCount,
	}
	if sum.BestPerformer != nil {
		body["best_performer"] = map[string]interface{}{
			"symbol":     sum.BestPerformer.Symbol,
			"change_24h": sum.BestPerformer.Change24h,
		}
	}
	return respond(body)
}

func walletFields(w *domain.Wallet) map[string]interface{} {
	holdings := make([]interface{}, 0, len(w.Portfolio.Holdings))
	for _, h := range w.Portfolio.Holdings {
		holdings = append(holdings, map[string]interface{}{
			"symbol":     h.Symbol,
			"name":       h.Name,
			"amount":     h.Amount.String(),
			"value":      h.Value.String(),
			"percentage": h.Percentage.StringFixed(2),
		})
	}
	return map[string]interface{}{
		"total_value": w.Portfolio.TotalValue.String(),
		"cash":        w.Cash.String(),
		"holdings":    holdings,
	}
}

func transactionList(log domain.TransactionLog) []interface{} {
	items := make([]interface{}, 0, len(log))
	for _, tx := range log {
		items = append(items, transactionFields(tx))
	}
	return items
}

func transactionFields(tx domain.Transaction) map[string]interface{} {
	return map[string]interface{}{
		"id":        tx.ID.String(),
		"date":      tx.Date.UTC().Format(time.RFC3339),
		"direction": string(tx.Direction),
		"symbol":    tx.Symbol,
		"amount":    tx.Amount.String(),
		"price":     tx.Price.String(),
		"total":     tx.Total.String(),
	}
}

func respond(body map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(body)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

func stringField(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

func requireString(req *structpb.Struct, key string) (string, error) {
	v := stringField(req, key)
	if v == "" {
		return "", status.Errorf(codes.InvalidArgument, "missing %s", key)
	}
	return v, nil
}

// requireDecimal accepts a decimal string ("0.1") or a JSON number
func requireDecimal(req *structpb.Struct, key string) (decimal.Decimal, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "missing %s", key)
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		d, err := decimal.NewFromString(kind.StringValue)
		if err != nil {
			return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", key, err)
		}
		return d, nil
	case *structpb.Value_NumberValue:
		d, err := domain.AmountFromFloat(kind.NumberValue)
		if err != nil {
			return decimal.Zero, status.Errorf(codes.InvalidArgument, "%s: %v", key, err)
		}
		return d, nil
	}
	return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s format", key)
}

func optionalInt(req *structpb.Struct, key string, def int) (int, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return def, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != float64(int(n.NumberValue)) {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer", key)
	}
	return int(n.NumberValue), nil
}

// mapError maps domain errors to gRPC status codes
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidParameters),
		errors.Is(err, domain.ErrUnknownCurrency):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, domain.ErrInsufficientHolding),
		errors.Is(err, domain.ErrInsufficientCash):
		return status.Errorf(codes.FailedPrecondition, "%s", err.Error())
	case errors.Is(err, domain.ErrUnknownAsset),
		errors.Is(err, domain.ErrNotFound):
		return status.Errorf(codes.NotFound, "%s", err.Error())
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", err.Error())
	}

	return status.Errorf(codes.Internal, "%s", err.Error())
}
