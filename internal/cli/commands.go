package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/simaogato/cryptodash-backend/internal/app"
	"github.com/simaogato/cryptodash-backend/internal/config"
	"github.com/simaogato/cryptodash-backend/internal/domain"
	"github.com/simaogato/cryptodash-backend/internal/usecase/converter"
	"github.com/simaogato/cryptodash-backend/internal/usecase/news"
)

// session holds the services built once per invocation
type session struct {
	opts []app.Option
	app  *app.App
}

// NewRootCmd creates the root command. opts are passed to app.New.
func NewRootCmd(opts ...app.Option) *cobra.Command {
	s := &session{opts: opts}

	var offline bool
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "cryptodash",
		Short: "CryptoDash - crypto market and paper wallet dashboard",
		Long: `CryptoDash shows market prices, price history and forecasts, converts
between fiat and crypto currencies, and keeps a paper-trading wallet.
Every command runs against in-process services; the wallet lives for one invocation.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if offline {
				cfg.LiveData = false
			}
			envSet := os.Getenv("LOG_LEVEL") != ""
			cfg.LogLevel = resolveLogLevel(cfg.LogLevel, logLevel, cmd.Flags().Changed("log-level"), envSet)
			log, err := cfg.NewLogger()
			if err != nil {
				return err
			}
			log.SetOutput(cmd.ErrOrStderr())

			s.app, err = app.New(cmd.Context(), cfg, log, s.opts...)
			return err
		},
	}

	rootCmd.AddCommand(newMarketCmd(s))
	rootCmd.AddCommand(newHistoryCmd(s))
	rootCmd.AddCommand(newPredictCmd(s))
	rootCmd.AddCommand(newConvertCmd(s))
	rootCmd.AddCommand(newCurrenciesCmd(s))
	rootCmd.AddCommand(newNewsCmd(s))
	rootCmd.AddCommand(newWalletCmd(s))
	rootCmd.AddCommand(newTradeCmd(s))

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Use the built-in catalog instead of live market data")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	return rootCmd
}

// defaultLogLevel keeps command output free of info logs unless asked for
const defaultLogLevel = "warn"

// resolveLogLevel picks the explicit flag first, then LOG_LEVEL, then the
// CLI default
func resolveLogLevel(configured, flag string, flagSet, envSet bool) string {
	switch {
	case flagSet:
		return flag
	case envSet:
		return configured
	}
	return defaultLogLevel
}

// newMarketCmd creates the market command
func newMarketCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "List current prices for the tracked coins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := s.app.Market.ListMarket(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTitle(out, "Market")
			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				source := "live"
				if !r.Live {
					source = mutedStyle.Render("catalog")
				}
				table = append(table, []string{
					strconv.Itoa(r.Rank),
					r.Symbol,
					r.Name,
					r.Price.StringFixed(2),
					formatChange(r.Change24h),
					r.MarketCap.StringFixed(0),
					r.Volume.StringFixed(0),
					source,
				})
			}
			printTable(out, []string{"#", "Symbol", "Name", "Price (USD)", "24h", "Market Cap", "Volume", "Source"}, table)
			return nil
		},
	}
}

// newHistoryCmd creates the history command
func newHistoryCmd(s *session) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "history [ASSET]",
		Short: "Show daily prices for an asset",
		Long: `Show daily prices for an asset over the last days.
Example: cryptodash history BTC --days=7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := s.app.Market.History(cmd.Context(), args[0], days)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTitle(out, fmt.Sprintf("%s price history (%d days)", strings.ToUpper(args[0]), days))
			rows := make([][]string, 0, len(points))
			for _, p := range points {
				rows = append(rows, []string{
					p.Timestamp.UTC().Format(time.DateOnly),
					strconv.FormatFloat(p.Price, 'f', 2, 64),
				})
			}
			printTable(out, []string{"Date", "Price (USD)"}, rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "Number of days")
	return cmd
}

// newPredictCmd creates the predict command
func newPredictCmd(s *session) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "predict [ASSET]",
		Short: "Show a price forecast with confidence bounds",
		Long: `Show a simulated price forecast for the next days.
Example: cryptodash predict ETH --days=14`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := s.app.Market.Prediction(cmd.Context(), args[0], days)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTitle(out, fmt.Sprintf("%s forecast (%d days)", strings.ToUpper(args[0]), days))
			rows := make([][]string, 0, len(points))
			for _, p := range points {
				rows = append(rows, []string{
					p.Date.Format(time.DateOnly),
					strconv.FormatFloat(p.Prediction, 'f', 2, 64),
					strconv.FormatFloat(p.LowerBound, 'f', 2, 64),
					strconv.FormatFloat(p.UpperBound, 'f', 2, 64),
				})
			}
			printTable(out, []string{"Date", "Prediction", "Low", "High"}, rows)
			fmt.Fprintln(out, mutedStyle.Render("Forecasts are simulated and are not financial advice."))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 14, "Number of days")
	return cmd
}

// newConvertCmd creates the convert command
func newConvertCmd(s *session) *cobra.Command {
	var live, swap bool
	cmd := &cobra.Command{
		Use:   "convert [AMOUNT] [FROM] [TO]",
		Short: "Convert an amount between currencies",
		Long: `Convert an amount between fiat and crypto currencies.
Example: cryptodash convert 1.5 BTC EUR --live`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], domain.ErrInvalidAmount)
			}
			from, to := args[1], args[2]
			if swap {
				from, to = converter.Swap(from, to)
			}

			svc := s.app.Converter
			if live {
				svc, err = liveConverter(cmd.Context(), s.app)
				if err != nil {
					return err
				}
			}

			conv, err := svc.Convert(amount, from, to)
			if err != nil {
				return err
			}

			result := conv.Result.StringFixed(8)
			if isFiat(s.app, conv.To) {
				if formatted, ok := converter.FormatFiat(conv.Result, conv.To); ok {
					result = formatted
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n", conv.Amount, conv.From, result, conv.To)
			return nil
		},
	}
	cmd.Flags().BoolVar(&live, "live", false, "Price crypto currencies from live quotes")
	cmd.Flags().BoolVar(&swap, "swap", false, "Swap FROM and TO")
	return cmd
}

func isFiat(a *app.App, code string) bool {
	for _, c := range a.Catalog.FiatCodes() {
		if c == code {
			return true
		}
	}
	return false
}

func liveConverter(ctx context.Context, a *app.App) (*converter.ConverterService, error) {
	if a.Market.Source == nil {
		return nil, errors.New("live rates need live market data (unset --offline and LIVE_DATA=false)")
	}
	rates, err := converter.Refresh(ctx, a.Catalog, a.Market.Source, a.Catalog)
	if err != nil {
		return nil, err
	}
	return converter.NewConverterService(rates), nil
}

// newCurrenciesCmd creates the currencies command
func newCurrenciesCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List the currencies the converter accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			printTitle(out, "Fiat")
			fiat := converter.FiatCurrencies(s.app.Catalog.FiatCodes())
			rows := make([][]string, 0, len(fiat))
			for _, c := range fiat {
				rows = append(rows, []string{c.Code, c.Symbol})
			}
			printTable(out, []string{"Code", "Symbol"}, rows)

			printTitle(out, "All codes")
			fmt.Fprintln(out, strings.Join(s.app.Converter.Currencies(), " "))
			return nil
		},
	}
}

// newNewsCmd creates the news command
func newNewsCmd(s *session) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "news [QUERY]",
		Short: "Search crypto news",
		Long: fmt.Sprintf(`Search crypto news by text and category, newest first.
Categories: %s
Example: cryptodash news etf --category=bitcoin`, strings.Join(news.Categories(), ", ")),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			articles, err := s.app.News.Search(cmd.Context(), query, category)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(articles) == 0 {
				fmt.Fprintln(out, mutedStyle.Render("No articles found."))
				return nil
			}
			for _, a := range articles {
				printTitle(out, a.Title)
				fmt.Fprintf(out, "%s | %s\n%s\n%s\n\n",
					a.Source, a.PublishedAt.UTC().Format(time.DateOnly), a.Summary, mutedStyle.Render(a.URL))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", news.CategoryAll, "Category filter")
	return cmd
}

// newWalletCmd creates the wallet command
func newWalletCmd(s *session) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Show holdings, cash and recent transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w, err := s.app.Wallet.Get(ctx)
			if err != nil {
				return err
			}
			sum, err := s.app.Dashboard.Summary(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSummary(cmd, sum.PortfolioValue, sum.Cash, sum.NetWorth)
			if sum.BestPerformer != nil {
				fmt.Fprintf(out, "Best performer: %s %s\n", sum.BestPerformer.Symbol, formatChange(sum.BestPerformer.Change24h))
			}
			printHoldings(cmd, w)

			printTitle(out, "Transactions")
			printTransactions(cmd, w.Log.Latest(limit))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of transactions to show (0 for all)")
	return cmd
}

// newTradeCmd creates the trade command
func newTradeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "trade [buy|sell] [ASSET] [AMOUNT]",
		Short: "Buy or sell an asset at the current price",
		Long: `Buy or sell an asset against the session wallet at the current price.
Example: cryptodash trade buy BTC 0.05`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			direction, err := domain.ParseDirection(args[0])
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[2], domain.ErrInvalidAmount)
			}

			target, err := s.app.Wallet.Target(ctx, direction, args[1])
			if err != nil {
				return err
			}
			w, tx, err := s.app.Wallet.Execute(ctx, target, amount)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s @ %s = %s\n",
				tx.Direction, tx.Amount, tx.Symbol, tx.Price.StringFixed(2), tx.Total.StringFixed(2))
			printSummary(cmd, w.Portfolio.TotalValue, w.Cash, w.NetWorth())
			printHoldings(cmd, w)
			return nil
		},
	}
}

func printSummary(cmd *cobra.Command, portfolio, cash, netWorth decimal.Decimal) {
	out := cmd.OutOrStdout()
	printTitle(out, "Wallet")
	fmt.Fprintf(out, "Portfolio: %s\nCash: %s\nNet worth: %s\n",
		usd(portfolio), usd(cash), usd(netWorth))
}

func printHoldings(cmd *cobra.Command, w *domain.Wallet) {
	rows := make([][]string, 0, len(w.Portfolio.Holdings))
	for _, h := range w.Portfolio.Holdings {
		rows = append(rows, []string{
			h.Symbol,
			h.Name,
			h.Amount.String(),
			h.Value.StringFixed(2),
			h.Percentage.StringFixed(2) + "%",
		})
	}
	printTable(cmd.OutOrStdout(), []string{"Symbol", "Name", "Amount", "Value (USD)", "Allocation"}, rows)
}

func printTransactions(cmd *cobra.Command, log domain.TransactionLog) {
	rows := make([][]string, 0, len(log))
	for _, tx := range log {
		rows = append(rows, []string{
			tx.Date.UTC().Format(time.DateOnly),
			string(tx.Direction),
			tx.Symbol,
			tx.Amount.String(),
			tx.Price.StringFixed(2),
			tx.Total.StringFixed(2),
		})
	}
	printTable(cmd.OutOrStdout(), []string{"Date", "Type", "Asset", "Amount", "Price", "Total"}, rows)
}

func usd(d decimal.Decimal) string {
	s, _ := converter.FormatFiat(d, "USD")
	return s
}
