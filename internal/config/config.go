package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	RedisURL string
	Port     string
	LogLevel string

	KafkaBrokers    []string
	RateEventsTopic string
	RefreshTopic    string
	RefreshGroup    string
	PrewarmInterval time.Duration
	PrewarmCommands []string
	HTTPTimeout     time.Duration
	Upstreams       Upstreams
	CoinTextAPIKey  string
	NimiqTextToken  string
}

// Upstreams holds the third-party endpoints. Coingecko BTC URL gets
// "&vs_currencies=..." appended per request.
type Upstreams struct {
	CoingeckoBTC   string
	CryptoCompare  string
	Poloniex       string
	CoingeckoNimiq string
	LocalBitcoins  string
	CoinText       string
	NimiqText      string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded (ok for prod)")
	}
	return FromEnv()
}

// FromEnv reads the configuration without touching .env files.
func FromEnv() *Config {
	return &Config{
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS"), ","),
		RateEventsTopic: getEnv("RATE_EVENTS_TOPIC", "rate-updates"),
		RefreshTopic:    getEnv("REFRESH_TOPIC", "rate-refresh"),
		RefreshGroup:    getEnv("REFRESH_GROUP", "rate-refresh-workers"),
		PrewarmInterval: getDuration("PREWARM_INTERVAL", 45*time.Second),
		PrewarmCommands: splitList(os.Getenv("PREWARM_COMMANDS"), ";"),
		HTTPTimeout:     getDuration("HTTP_TIMEOUT", 10*time.Second),
		Upstreams: Upstreams{
			CoingeckoBTC:   getEnv("COINGECKO_BTC_URL", "https://api.coingecko.com/api/v3/simple/price?ids=bitcoin"),
			CryptoCompare:  getEnv("CRYPTOCOMPARE_NIM_URL", "https://min-api.cryptocompare.com/data/generateAvg?fsym=NIM&tsym=BTC&e=CCCAGG"),
			Poloniex:       getEnv("POLONIEX_NIM_URL", "https://poloniex.com/public?command=returnTradeHistory&currencyPair=BTC_NIM"),
			CoingeckoNimiq: getEnv("COINGECKO_NIM_URL", "https://api.coingecko.com/api/v3/simple/price?ids=nimiq-2&vs_currencies=btc"),
			LocalBitcoins:  getEnv("LOCALBITCOINS_URL", "https://localbitcoins.com/bitcoinaverage/ticker-all-currencies/"),
			CoinText:       getEnv("COINTEXT_URL", "https://pos-api.cointext.io/create_invoice/"),
			NimiqText:      getEnv("NIMIQTEXT_URL", "https://api.nimiqtext.io/apibuy.php"),
		},
		CoinTextAPIKey: os.Getenv("API_KEY"),
		NimiqTextToken: os.Getenv("NIMIQ_TEXT"),
	}
}

// KafkaEnabled reports whether rate events and refresh workers should run.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return d
}

func splitList(v, sep string) []string {
	var out []string
	for _, part := range strings.Split(v, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
