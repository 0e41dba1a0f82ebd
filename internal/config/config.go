package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Config holds process settings read from the environment
type Config struct {
	GRPCAddr string

	CoinGeckoBaseURL string
	CoinGeckoTimeout time.Duration
	CoinGeckoRetries int
	LiveData         bool // false keeps every request on the static catalog

	StartingCash decimal.Decimal

	LogLevel  string
	LogFormat string // "text" or "json"
}

// Default returns the settings used when no variables are set
func Default() *Config {
	return &Config{
		GRPCAddr:         ":8080",
		CoinGeckoBaseURL: "https://api.coingecko.com/api/v3",
		CoinGeckoTimeout: 10 * time.Second,
		CoinGeckoRetries: 2,
		LiveData:         true,
		StartingCash:     decimal.NewFromInt(10000),
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

// Load reads an optional .env file, then overrides defaults from the
// environment
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, typically os.Getenv
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := Default()

	if v := getenv("GRPC_ADDR"); v != "" {
		cfg.GRPCAddr = v
	}
	if v := getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.CoinGeckoBaseURL = v
	}
	if v := getenv("COINGECKO_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid COINGECKO_TIMEOUT: %w", err)
		}
		cfg.CoinGeckoTimeout = d
	}
	if v := getenv("COINGECKO_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid COINGECKO_RETRIES: %q", v)
		}
		cfg.CoinGeckoRetries = n
	}
	if v := getenv("LIVE_DATA"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LIVE_DATA: %w", err)
		}
		cfg.LiveData = b
	}
	if v := getenv("STARTING_CASH"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			return nil, fmt.Errorf("invalid STARTING_CASH: %q", v)
		}
		cfg.StartingCash = d
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}

	return cfg, nil
}

// NewLogger builds the process logger from LogLevel and LogFormat
func (c *Config) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	log := logrus.New()
	log.SetLevel(level)
	switch c.LogFormat {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT: %q", c.LogFormat)
	}
	return log, nil
}
