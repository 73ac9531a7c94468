package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel  string   `env:"LOG_LEVEL" envDefault:"info"`
	Port      string   `env:"PORT" envDefault:"8080"`
	Watchlist []string `env:"WATCHLIST" envDefault:"RELIANCE,TCS,HDFCBANK,INFY,ICICIBANK"`
	Postgres  Postgres
	Redis     Redis
	Auth      Auth
	Market    Market
}

type Postgres struct {
	URL          string `env:"POSTGRES_URL"`
	MaxOpenConns int    `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns int    `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
}

// Redis is optional; with an empty addr the quote cache is skipped.
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:""`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type Auth struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

type Market struct {
	// Provider selects the price source: "mock" or "alphavantage".
	Provider        string        `env:"MARKET_PROVIDER" envDefault:"mock"`
	AlphaVantageURL string        `env:"ALPHA_VANTAGE_URL" envDefault:"https://www.alphavantage.co"`
	APIKey          string        `env:"ALPHA_VANTAGE_API_KEY" envDefault:""`
	Timeout         time.Duration `env:"MARKET_API_TIMEOUT" envDefault:"10s"`
	RefreshInterval time.Duration `env:"PRICE_REFRESH_INTERVAL" envDefault:"1h"`
	QuoteFreshness  time.Duration `env:"QUOTE_FRESHNESS" envDefault:"15m"`
	CacheTTL        time.Duration `env:"QUOTE_CACHE_TTL" envDefault:"5m"`
}

func MustLoad() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}
