package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	TelegramToken string `env:"TELEGRAM_TOKEN,required,notEmpty"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	Redis    RedisConfig
	Database DatabaseConfig
	Rates    RatesConfig
	Limits   LimitsConfig

	AdminIDs   []int64 `env:"ADMIN_IDS" envSeparator:","`
	ReportsDir string  `env:"REPORTS_DIR" envDefault:"reports"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,required"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"24h"`
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST,required"`
	Port            int           `env:"DB_PORT,required"`
	User            string        `env:"DB_USER,required"`
	Password        string        `env:"DB_PASSWORD,required"`
	Name            string        `env:"DB_NAME,required"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"2m"`
}

// RatesConfig holds the exchange rates offered as defaults in the dialog
// and the lowest BRL rate a user may enter. When APIURL is set, live rates
// replace the defaults.
type RatesConfig struct {
	DefaultUSDToBRL float64 `env:"DEFAULT_USD_BRL" envDefault:"5.0"`
	DefaultEURToBRL float64 `env:"DEFAULT_EUR_BRL" envDefault:"6.0"`
	DefaultEURToUSD float64 `env:"DEFAULT_EUR_USD" envDefault:"1.08"`
	MinRate         float64 `env:"MIN_EXCHANGE_RATE" envDefault:"1.0"`

	APIURL     string        `env:"RATES_API_URL"`
	APIToken   string        `env:"RATES_API_TOKEN"`
	APITimeout time.Duration `env:"RATES_API_TIMEOUT" envDefault:"5s"`
	CacheTTL   time.Duration `env:"RATES_CACHE_TTL" envDefault:"1h"`
}

type LimitsConfig struct {
	CalcRateLimit  int64         `env:"CALC_RATE_LIMIT" envDefault:"20"`
	CalcRateWindow time.Duration `env:"CALC_RATE_WINDOW" envDefault:"1m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.AdminIDs) == 0 {
		return fmt.Errorf("ADMIN_IDS: at least one admin ID is required")
	}
	if c.Rates.MinRate <= 0 {
		return fmt.Errorf("MIN_EXCHANGE_RATE: must be positive, got %g", c.Rates.MinRate)
	}
	if c.Rates.DefaultEURToUSD <= 0 {
		return fmt.Errorf("DEFAULT_EUR_USD: must be positive, got %g", c.Rates.DefaultEURToUSD)
	}
	for name, rate := range map[string]float64{
		"DEFAULT_USD_BRL": c.Rates.DefaultUSDToBRL,
		"DEFAULT_EUR_BRL": c.Rates.DefaultEURToBRL,
	} {
		if rate < c.Rates.MinRate {
			return fmt.Errorf("%s: %g is below MIN_EXCHANGE_RATE %g", name, rate, c.Rates.MinRate)
		}
	}
	if c.Rates.APIURL != "" && c.Rates.APITimeout <= 0 {
		return fmt.Errorf("RATES_API_TIMEOUT: must be positive")
	}
	if c.Limits.CalcRateLimit < 1 {
		return fmt.Errorf("CALC_RATE_LIMIT: must be at least 1")
	}
	if c.Limits.CalcRateWindow <= 0 {
		return fmt.Errorf("CALC_RATE_WINDOW: must be positive")
	}
	return nil
}

// IsAdmin reports whether chatID is listed in ADMIN_IDS.
func (c *Config) IsAdmin(chatID int64) bool {
	for _, id := range c.AdminIDs {
		if id == chatID {
			return true
		}
	}
	return false
}
