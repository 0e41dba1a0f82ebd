package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/simaogato/cryptodash-backend/internal/adapter/catalog"
	"github.com/simaogato/cryptodash-backend/internal/adapter/coingecko"
	"github.com/simaogato/cryptodash-backend/internal/adapter/repository/memory"
	"github.com/simaogato/cryptodash-backend/internal/config"
	"github.com/simaogato/cryptodash-backend/internal/domain"
	"github.com/simaogato/cryptodash-backend/internal/usecase/converter"
	"github.com/simaogato/cryptodash-backend/internal/usecase/dashboard"
	"github.com/simaogato/cryptodash-backend/internal/usecase/ledger"
	"github.com/simaogato/cryptodash-backend/internal/usecase/market"
	"github.com/simaogato/cryptodash-backend/internal/usecase/news"
	"github.com/simaogato/cryptodash-backend/internal/usecase/seeder"
	"github.com/simaogato/cryptodash-backend/internal/usecase/series"
	"github.com/simaogato/cryptodash-backend/internal/usecase/wallet"
)

// App bundles the wired use cases shared by the server and the CLI
type App struct {
	Catalog    *catalog.Static
	WalletRepo domain.WalletRepository

	Market    *market.MarketService
	Converter *converter.ConverterService
	News      *news.NewsService
	Wallet    *wallet.WalletService
	Dashboard *dashboard.DashboardService
}

// Option adjusts the wiring, mainly for tests
type Option func(*options)

type options struct {
	source    domain.MarketDataSource
	sourceSet bool
	generator *series.Generator
	ledger    *ledger.Ledger
}

// WithSource replaces the live market data source; nil disables live data
func WithSource(src domain.MarketDataSource) Option {
	return func(o *options) {
		o.source = src
		o.sourceSet = true
	}
}

// WithGenerator replaces the series generator
func WithGenerator(g *series.Generator) Option {
	return func(o *options) { o.generator = g }
}

// WithLedger replaces the ledger
func WithLedger(l *ledger.Ledger) Option {
	return func(o *options) { o.ledger = l }
}

// New wires repositories and services and seeds the session wallet
func New(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, opts ...Option) (*App, error) {
	o := &options{
		generator: series.NewGenerator(),
		ledger:    ledger.NewLedger(),
	}
	for _, opt := range opts {
		opt(o)
	}

	// 1. Reference data and live source
	static := catalog.NewStatic()
	source := o.source
	if !o.sourceSet && cfg.LiveData {
		source = coingecko.NewClient(coingecko.Config{
			BaseURL: cfg.CoinGeckoBaseURL,
			Timeout: cfg.CoinGeckoTimeout,
			Retries: cfg.CoinGeckoRetries,
		}, log)
	}

	// 2. Repositories (in memory)
	walletRepo := memory.NewWalletRepository()

	// 3. Services (Use Cases)
	marketService := market.NewMarketService(source, static, o.generator, log.WithField("service", "market"))
	converterService := converter.NewConverterService(static)
	newsService := news.NewNewsService(static)
	walletService := wallet.NewWalletService(walletRepo, o.ledger, marketService, log.WithField("service", "wallet"))
	dashboardService := dashboard.NewDashboardService(walletRepo, marketService)

	// 4. Seed the session wallet
	walletSeeder := seeder.NewWalletSeeder(walletRepo, static.SampleWallet(cfg.StartingCash))
	if err := walletSeeder.Seed(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed wallet: %w", err)
	}

	return &App{
		Catalog:    static,
		WalletRepo: walletRepo,
		Market:     marketService,
		Converter:  converterService,
		News:       newsService,
		Wallet:     walletService,
		Dashboard:  dashboardService,
	}, nil
}
