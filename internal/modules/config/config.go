package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const configFilePathENV = "CONFIG_FILE"

// Trading — неизменяемая торговая политика. Читается один раз на старте
// и дальше передаётся по ссылке; никакой мутации полей в рантайме
// (динамические token id живут отдельно, см. trader.TokenIDs).
type Trading struct {
	Enabled     bool   `yaml:"enabled"`
	DryRun      bool   `yaml:"dry_run"`
	AccountType string `yaml:"account_type"` // "email" | "wallet"
	PrivateKey  string `yaml:"-"`

	// Статические креды; если пустые — деривим из приватного ключа.
	APIKey        string `yaml:"-"`
	APISecret     string `yaml:"-"`
	APIPassphrase string `yaml:"-"`

	OrderPath         string `yaml:"order_path"`
	OrderType         string `yaml:"order_type"`
	TimeInForce       string `yaml:"time_in_force"`
	SignatureEncoding string `yaml:"signature_encoding"` // hex | base64
	TimestampUnit     string `yaml:"timestamp_unit"`     // s | ms

	OrderUSD float64 `yaml:"order_usd"`

	// Окно по времени до резолва: (min, max].
	MinMinutesLeft float64 `yaml:"min_minutes_left"`
	MaxMinutesLeft float64 `yaml:"max_minutes_left"`

	MinPredictPct         float64 `yaml:"min_predict_pct"`
	EnforcePriceVsPredict bool    `yaml:"enforce_price_vs_predict"`
	MaxPriceCents         float64 `yaml:"max_price_cents"`

	MinDistanceQuietUSD    float64 `yaml:"min_distance_quiet_usd"`
	MinDistanceVolatileUSD float64 `yaml:"min_distance_volatile_usd"`

	RequireHeikenColor bool `yaml:"require_heiken_color"`
	MinHeikenCount     int  `yaml:"min_heiken_count"`

	MaxTradesPerMarket int `yaml:"max_trades_per_market"`

	BlockedETWindows string `yaml:"blocked_et_windows"` // "HH:MM-HH:MM,HH:MM-HH:MM"
	PriceUnit        string `yaml:"price_unit"`         // cents | dollars
}

type Feed struct {
	WSURL string `yaml:"ws_url"`
}

type Jaeger struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type Config struct {
	ClobBaseURL string  `yaml:"clob_base_url"`
	Trading     Trading `yaml:"trading"`
	Feed        Feed    `yaml:"feed"`

	DB             string `yaml:"db_dsn"`
	HealthAddr     string `yaml:"health_addr"`
	LogsDir        string `yaml:"logs_dir"`
	SignerURL      string `yaml:"signer_url"`
	TelegramToken  string `yaml:"-"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
	Jaeger         Jaeger `yaml:"jaeger"`
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("POLYMARKET_CLOB_BASE_URL", "https://clob.polymarket.com")

	v.SetDefault("POLYMARKET_AUTO_TRADE", false)
	v.SetDefault("POLYMARKET_DRY_RUN", true)
	v.SetDefault("POLYMARKET_ACCOUNT_TYPE", "")
	v.SetDefault("POLYMARKET_PRIVATE_KEY", "")
	v.SetDefault("POLYMARKET_CLOB_API_KEY", "")
	v.SetDefault("POLYMARKET_CLOB_API_SECRET", "")
	v.SetDefault("POLYMARKET_CLOB_API_PASSPHRASE", "")
	v.SetDefault("POLYMARKET_CLOB_ORDER_PATH", "/order")
	v.SetDefault("POLYMARKET_CLOB_ORDER_TYPE", "limit")
	v.SetDefault("POLYMARKET_CLOB_TIME_IN_FORCE", "gtc")
	v.SetDefault("POLYMARKET_CLOB_SIGNATURE_ENCODING", "hex")
	v.SetDefault("POLYMARKET_CLOB_TIMESTAMP_UNIT", "s")
	v.SetDefault("POLYMARKET_ORDER_USD", 10.0)
	v.SetDefault("POLYMARKET_MIN_MINUTES_LEFT", 5.0)
	v.SetDefault("POLYMARKET_MAX_MINUTES_LEFT", 9.0)
	v.SetDefault("POLYMARKET_MIN_PREDICT_PCT", 0.65)
	v.SetDefault("POLYMARKET_ENFORCE_PRICE_VS_PREDICT", true)
	v.SetDefault("POLYMARKET_MAX_PRICE_CENTS", 99.0)
	v.SetDefault("POLYMARKET_MIN_DISTANCE_QUIET_USD", 50.0)
	v.SetDefault("POLYMARKET_MIN_DISTANCE_VOLATILE_USD", 100.0)
	v.SetDefault("POLYMARKET_REQUIRE_HEIKEN_COLOR", true)
	v.SetDefault("POLYMARKET_MIN_HEIKEN_COUNT", 2)
	v.SetDefault("POLYMARKET_MAX_TRADES_PER_MARKET", 1)
	v.SetDefault("POLYMARKET_BLOCKED_ET_WINDOWS", "09:30-10:15")
	v.SetDefault("POLYMARKET_PRICE_UNIT", "cents")

	v.SetDefault("POLYMARKET_FEED_WS_URL", "")
	v.SetDefault("POLYMARKET_SIGNER_URL", "")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("HEALTH_ADDR", ":8080")
	v.SetDefault("LOGS_DIR", "./logs")
	v.SetDefault("TELEGRAM_TOKEN", "")
	v.SetDefault("TELEGRAM_CHAT_ID", 0)
	v.SetDefault("JAEGER_HOST", "")
	v.SetDefault("JAEGER_PORT", 6831)

	config := Config{
		ClobBaseURL: v.GetString("POLYMARKET_CLOB_BASE_URL"),
		Trading: Trading{
			Enabled:                v.GetBool("POLYMARKET_AUTO_TRADE"),
			DryRun:                 v.GetBool("POLYMARKET_DRY_RUN"),
			AccountType:            strings.ToLower(v.GetString("POLYMARKET_ACCOUNT_TYPE")),
			PrivateKey:             v.GetString("POLYMARKET_PRIVATE_KEY"),
			APIKey:                 v.GetString("POLYMARKET_CLOB_API_KEY"),
			APISecret:              v.GetString("POLYMARKET_CLOB_API_SECRET"),
			APIPassphrase:          v.GetString("POLYMARKET_CLOB_API_PASSPHRASE"),
			OrderPath:              v.GetString("POLYMARKET_CLOB_ORDER_PATH"),
			OrderType:              v.GetString("POLYMARKET_CLOB_ORDER_TYPE"),
			TimeInForce:            v.GetString("POLYMARKET_CLOB_TIME_IN_FORCE"),
			SignatureEncoding:      v.GetString("POLYMARKET_CLOB_SIGNATURE_ENCODING"),
			TimestampUnit:          v.GetString("POLYMARKET_CLOB_TIMESTAMP_UNIT"),
			OrderUSD:               v.GetFloat64("POLYMARKET_ORDER_USD"),
			MinMinutesLeft:         v.GetFloat64("POLYMARKET_MIN_MINUTES_LEFT"),
			MaxMinutesLeft:         v.GetFloat64("POLYMARKET_MAX_MINUTES_LEFT"),
			MinPredictPct:          v.GetFloat64("POLYMARKET_MIN_PREDICT_PCT"),
			EnforcePriceVsPredict:  v.GetBool("POLYMARKET_ENFORCE_PRICE_VS_PREDICT"),
			MaxPriceCents:          v.GetFloat64("POLYMARKET_MAX_PRICE_CENTS"),
			MinDistanceQuietUSD:    v.GetFloat64("POLYMARKET_MIN_DISTANCE_QUIET_USD"),
			MinDistanceVolatileUSD: v.GetFloat64("POLYMARKET_MIN_DISTANCE_VOLATILE_USD"),
			RequireHeikenColor:     v.GetBool("POLYMARKET_REQUIRE_HEIKEN_COLOR"),
			MinHeikenCount:         v.GetInt("POLYMARKET_MIN_HEIKEN_COUNT"),
			MaxTradesPerMarket:     v.GetInt("POLYMARKET_MAX_TRADES_PER_MARKET"),
			BlockedETWindows:       v.GetString("POLYMARKET_BLOCKED_ET_WINDOWS"),
			PriceUnit:              v.GetString("POLYMARKET_PRICE_UNIT"),
		},
		Feed: Feed{
			WSURL: v.GetString("POLYMARKET_FEED_WS_URL"),
		},
		DB:             v.GetString("DATABASE_DSN"),
		HealthAddr:     v.GetString("HEALTH_ADDR"),
		LogsDir:        v.GetString("LOGS_DIR"),
		SignerURL:      v.GetString("POLYMARKET_SIGNER_URL"),
		TelegramToken:  v.GetString("TELEGRAM_TOKEN"),
		TelegramChatID: v.GetInt64("TELEGRAM_CHAT_ID"),
		Jaeger: Jaeger{
			Host: v.GetString("JAEGER_HOST"),
			Port: v.GetInt("JAEGER_PORT"),
		},
	}

	// Необязательный yaml-оверлей поверх env (несекретные поля).
	if name := os.Getenv(configFilePathENV); name != "" {
		file, err := os.Open("configs/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer func() {
			_ = file.Close()
		}()

		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	t := c.Trading
	switch t.SignatureEncoding {
	case "hex", "base64":
	default:
		return fmt.Errorf("unsupported signature encoding %q", t.SignatureEncoding)
	}
	switch t.TimestampUnit {
	case "s", "ms":
	default:
		return fmt.Errorf("unsupported timestamp unit %q", t.TimestampUnit)
	}
	switch t.PriceUnit {
	case "cents", "dollars":
	default:
		return fmt.Errorf("unsupported price unit %q", t.PriceUnit)
	}
	return nil
}
