// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable; nested structs add their tag as a prefix
// (DB_USER, REDIS_HOST, RATE_LIMIT_CAPACITY, ...).
type Config struct {
	Env         string `envconfig:"APP_ENV" default:"dev"`
	Port        string `envconfig:"APP_PORT" default:"8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	StoreDriver string `envconfig:"STORE_DRIVER" default:"mysql"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`

	DB DBConfig `envconfig:"DB"`

	// BidIncrement is the step a proxy bid raises the price by.
	BidIncrement int64 `envconfig:"BID_INCREMENT" default:"1000"`
	// FeeRate is the platform's share of the final price.
	FeeRate              decimal.Decimal `envconfig:"FEE_RATE" default:"0.10"`
	CloseSweepEvery      time.Duration   `envconfig:"CLOSE_SWEEP_EVERY" default:"1m"`
	EndingSoonSweepEvery time.Duration   `envconfig:"ENDING_SOON_SWEEP_EVERY" default:"5m"`
	EndingSoonWithin     time.Duration   `envconfig:"ENDING_SOON_WITHIN" default:"10m"`

	// RabbitMQURL is optional; without it events and mail are only logged.
	RabbitMQURL    string `envconfig:"RABBITMQ_URL"`
	EventsExchange string `envconfig:"EVENTS_EXCHANGE" default:"auction.events"`
	MailQueue      string `envconfig:"MAIL_QUEUE" default:"mail.outbound"`

	Redis     RedisConfig     `envconfig:"REDIS"`
	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// DBConfig holds the MySQL connection settings.
type DBConfig struct {
	User string `envconfig:"USER" default:"root"`
	Pass string `envconfig:"PASS"`
	Host string `envconfig:"HOST" default:"127.0.0.1"`
	Port string `envconfig:"PORT" default:"3306"`
	Name string `envconfig:"NAME" default:"auction_house"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.RateLimit.normalize()
	return cfg, nil
}

func (c Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	switch c.StoreDriver {
	case StoreMySQL, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.BidIncrement <= 0 {
		return fmt.Errorf("BID_INCREMENT must be positive")
	}
	if c.FeeRate.IsNegative() || c.FeeRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("FEE_RATE must be in [0, 1)")
	}
	if c.CloseSweepEvery <= 0 || c.EndingSoonSweepEvery <= 0 || c.EndingSoonWithin <= 0 {
		return fmt.Errorf("sweep intervals must be positive")
	}
	return nil
}
