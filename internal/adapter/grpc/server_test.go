package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/cryptodash-backend/internal/app"
	"github.com/simaogato/cryptodash-backend/internal/config"
	"github.com/simaogato/cryptodash-backend/internal/domain"
)

// newTestClient starts an in-process server backed by a fresh offline app
func newTestClient(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()
	log, _ := test.NewNullLogger()

	cfg := config.Default()
	cfg.LiveData = false
	services, err := app.New(ctx, cfg, log, app.WithSource(nil))
	require.NoError(t, err)

	srv := grpclib.NewServer(grpclib.UnaryInterceptor(LoggingInterceptor(log)))
	RegisterDashboardServiceServer(srv, NewServer(
		services.Market,
		services.Converter,
		services.News,
		services.Wallet,
		services.Dashboard,
	))

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpclib.NewClient("passthrough:///bufnet",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewClient(conn)
}

func list(resp *structpb.Struct, key string) []*structpb.Value {
	return resp.GetFields()[key].GetListValue().GetValues()
}

func field(v *structpb.Value, key string) *structpb.Value {
	return v.GetStructValue().GetFields()[key]
}

func TestServer_ListMarket(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.Call(context.Background(), MethodListMarket, nil)
	require.NoError(t, err)

	assets := list(resp, "assets")
	require.Len(t, assets, 8)
	assert.Equal(t, "BTC", field(assets[0], "symbol").GetStringValue())
	assert.Equal(t, "57320.42", field(assets[0], "price").GetStringValue())
	assert.False(t, field(assets[0], "live").GetBoolValue())
}

func TestServer_GetHistory(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	resp, err := client.Call(ctx, MethodGetHistory, map[string]interface{}{"asset": "BTC", "days": 7})
	require.NoError(t, err)
	assert.Len(t, list(resp, "points"), 8)

	resp, err = client.Call(ctx, MethodGetHistory, map[string]interface{}{"asset": "ethereum"})
	require.NoError(t, err)
	assert.Len(t, list(resp, "points"), 31, "defaults to 30 days")
}

func TestServer_GetPrediction(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.Call(context.Background(), MethodGetPrediction, map[string]interface{}{"asset": "SOL"})
	require.NoError(t, err)

	points := list(resp, "points")
	require.Len(t, points, 14, "defaults to 14 days")
	first := points[0]
	assert.Less(t, field(first, "lower_bound").GetNumberValue(), field(first, "prediction").GetNumberValue())
	assert.Greater(t, field(first, "upper_bound").GetNumberValue(), field(first, "prediction").GetNumberValue())
}

func TestServer_Convert(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.Call(context.Background(), MethodConvert, map[string]interface{}{
		"amount": "100", "from": "usd", "to": "eur",
	})
	require.NoError(t, err)
	assert.Equal(t, "92", resp.GetFields()["result"].GetStringValue())
	assert.Equal(t, "EUR", resp.GetFields()["to"].GetStringValue())
}

func TestServer_SearchNews(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.Call(context.Background(), MethodSearchNews, map[string]interface{}{"category": "nft"})
	require.NoError(t, err)

	articles := list(resp, "articles")
	require.Len(t, articles, 1)
	assert.Equal(t, "n6", field(articles[0], "id").GetStringValue())
}

func TestServer_GetWallet(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.Call(context.Background(), MethodGetWallet, map[string]interface{}{"limit": 2})
	require.NoError(t, err)

	assert.Equal(t, "10000", resp.GetFields()["cash"].GetStringValue())
	assert.Equal(t, "15421.43", resp.GetFields()["total_value"].GetStringValue())
	assert.Len(t, list(resp, "holdings"), 6)
	assert.Len(t, list(resp, "transactions"), 2)
}

func TestServer_ExecuteTrade(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	resp, err := client.Call(ctx, MethodExecuteTrade, map[string]interface{}{
		"direction": "buy", "asset": "BTC", "amount": "0.01",
	})
	require.NoError(t, err)

	tx := resp.GetFields()["transaction"]
	assert.Equal(t, "BUY", field(tx, "direction").GetStringValue())
	assert.Equal(t, "573.2042", field(tx, "total").GetStringValue())
	assert.Equal(t, "9426.7958", resp.GetFields()["cash"].GetStringValue())

	// the trade is visible to the next call
	wallet, err := client.Call(ctx, MethodGetWallet, nil)
	require.NoError(t, err)
	assert.Len(t, list(wallet, "transactions"), 6)
	assert.Equal(t, "9426.7958", wallet.GetFields()["cash"].GetStringValue())

	// numeric amounts are accepted too
	resp, err = client.Call(ctx, MethodExecuteTrade, map[string]interface{}{
		"direction": "SELL", "asset": "dot", "amount": 15,
	})
	require.NoError(t, err)
	for _, h := range list(resp, "holdings") {
		assert.NotEqual(t, "DOT", field(h, "symbol").GetStringValue(), "fully sold holding is removed")
	}
}

func TestServer_ExecuteTradeErrors(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	tests := []struct {
		name         string
		req          map[string]interface{}
		expectedCode codes.Code
	}{
		{
			name:         "Insufficient cash",
			req:          map[string]interface{}{"direction": "buy", "asset": "BTC", "amount": "1"},
			expectedCode: codes.FailedPrecondition,
		},
		{
			name:         "Nothing to sell",
			req:          map[string]interface{}{"direction": "sell", "asset": "DOGE", "amount": "1"},
			expectedCode: codes.FailedPrecondition,
		},
		{
			name:         "Selling more than held",
			req:          map[string]interface{}{"direction": "sell", "asset": "BTC", "amount": "1"},
			expectedCode: codes.FailedPrecondition,
		},
		{
			name:         "Zero amount",
			req:          map[string]interface{}{"direction": "buy", "asset": "BTC", "amount": "0"},
			expectedCode: codes.InvalidArgument,
		},
		{
			name:         "Negative numeric amount",
			req:          map[string]interface{}{"direction": "buy", "asset": "BTC", "amount": -2},
			expectedCode: codes.InvalidArgument,
		},
		{
			name:         "Malformed amount",
			req:          map[string]interface{}{"direction": "buy", "asset": "BTC", "amount": "lots"},
			expectedCode: codes.InvalidArgument,
		},
		{
			name:         "Bad direction",
			req:          map[string]interface{}{"direction": "hold", "asset": "BTC", "amount": "1"},
			expectedCode: codes.InvalidArgument,
		},
		{
			name:         "Unknown asset",
			req:          map[string]interface{}{"direction": "buy", "asset": "NOPE", "amount": "1"},
			expectedCode: codes.NotFound,
		},
		{
			name:         "Missing asset",
			req:          map[string]interface{}{"direction": "buy", "amount": "1"},
			expectedCode: codes.InvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Call(ctx, MethodExecuteTrade, tt.req)
			assert.Equal(t, tt.expectedCode, status.Code(err), "error: %v", err)
		})
	}

	// rejected trades leave the wallet untouched
	wallet, err := client.Call(ctx, MethodGetWallet, nil)
	require.NoError(t, err)
	assert.Equal(t, "10000", wallet.GetFields()["cash"].GetStringValue())
	assert.Len(t, list(wallet, "transactions"), 5)
}

func TestServer_RequestErrors(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	tests := []struct {
		name         string
		method       string
		req          map[string]interface{}
		expectedCode codes.Code
	}{
		{name: "History without asset", method: MethodGetHistory, req: nil, expectedCode: codes.InvalidArgument},
		{name: "History with fractional days", method: MethodGetHistory, req: map[string]interface{}{"asset": "BTC", "days": 1.5}, expectedCode: codes.InvalidArgument},
		{name: "History with negative days", method: MethodGetHistory, req: map[string]interface{}{"asset": "BTC", "days": -1}, expectedCode: codes.InvalidArgument},
		{name: "History of unknown asset", method: MethodGetHistory, req: map[string]interface{}{"asset": "NOPE"}, expectedCode: codes.NotFound},
		{name: "History beyond a year", method: MethodGetHistory, req: map[string]interface{}{"asset": "BTC", "days": 300000}, expectedCode: codes.InvalidArgument},
		{name: "Prediction beyond a year", method: MethodGetPrediction, req: map[string]interface{}{"asset": "BTC", "days": 1e9}, expectedCode: codes.InvalidArgument},
		{name: "Prediction with negative days", method: MethodGetPrediction, req: map[string]interface{}{"asset": "BTC", "days": -3}, expectedCode: codes.InvalidArgument},
		{name: "Convert unknown currency", method: MethodConvert, req: map[string]interface{}{"amount": "1", "from": "USD", "to": "XYZ"}, expectedCode: codes.InvalidArgument},
		{name: "Convert without amount", method: MethodConvert, req: map[string]interface{}{"from": "USD", "to": "EUR"}, expectedCode: codes.InvalidArgument},
		{name: "Wallet with text limit", method: MethodGetWallet, req: map[string]interface{}{"limit": "ten"}, expectedCode: codes.InvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Call(ctx, tt.method, tt.req)
			assert.Equal(t, tt.expectedCode, status.Code(err), "error: %v", err)
		})
	}
}

func TestServer_GetSummary(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.Call(context.Background(), MethodGetSummary, nil)
	require.NoError(t, err)

	f := resp.GetFields()
	assert.Equal(t, "15421.43", f["portfolio_value"].GetStringValue())
	assert.Equal(t, "25421.43", f["net_worth"].GetStringValue())
	assert.Equal(t, float64(6), f["asset_count"].GetNumberValue())
	assert.Equal(t, "SOL", field(f["best_performer"], "symbol").GetStringValue())
}

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))
	assert.Equal(t, codes.Canceled, status.Code(mapError(context.Canceled)))
	assert.Equal(t, codes.DeadlineExceeded, status.Code(mapError(context.DeadlineExceeded)))
	assert.Equal(t, codes.Internal, status.Code(mapError(assert.AnError)))

	emptySymbol := domain.Order{Direction: domain.DirectionBuy, Amount: decimal.NewFromInt(1), Price: decimal.NewFromInt(1)}
	assert.Equal(t, codes.InvalidArgument, status.Code(mapError(emptySymbol.Validate())))
}
