package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test

	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig bounds API calls per client. RPS 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// Addr returns the HTTP listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// LedgerConfig holds currency and bootstrap settings. Amounts are decimal strings.
type LedgerConfig struct {
	CanonicalCurrency     string        `mapstructure:"canonical_currency"`
	DisplayCurrency       string        `mapstructure:"display_currency"`
	ExchangeRate          string        `mapstructure:"exchange_rate"` // display units per canonical unit
	DefaultIncomeCategory string        `mapstructure:"default_income_category"`
	SeedWallets           []SeedWallet  `mapstructure:"seed_wallets"`
	CommandTTL            time.Duration `mapstructure:"command_ttl"`
}

// SeedWallet is created on first start when no state was persisted.
type SeedWallet struct {
	Name    string `mapstructure:"name"`
	Balance string `mapstructure:"balance"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend"` // memory, postgres, redis
}

// Validate checks values that have no usable fallback.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("storage.backend must be one of memory, postgres, redis; got %q", c.Storage.Backend)
	}
	if c.Server.RateLimit.RPS < 0 || c.Server.RateLimit.Burst < 0 {
		return fmt.Errorf("server.rate_limit values must not be negative")
	}
	if c.Ledger.CanonicalCurrency == "" || c.Ledger.DisplayCurrency == "" {
		return fmt.Errorf("ledger.canonical_currency and ledger.display_currency are required")
	}
	if c.Ledger.ExchangeRate == "" {
		return fmt.Errorf("ledger.exchange_rate is required")
	}
	for i, w := range c.Ledger.SeedWallets {
		if strings.TrimSpace(w.Name) == "" {
			return fmt.Errorf("ledger.seed_wallets[%d].name is required", i)
		}
	}
	return nil
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: FLG_ (Finance LedGer).
// Nested keys use underscore: FLG_DATABASE_HOST, FLG_LEDGER_EXCHANGE_RATE, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.rate_limit.rps", 20)
	v.SetDefault("server.rate_limit.burst", 40)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "finance_ledger")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("ledger.canonical_currency", "USD")
	v.SetDefault("ledger.display_currency", "EUR")
	v.SetDefault("ledger.exchange_rate", "0.92")
	v.SetDefault("ledger.default_income_category", "salary")
	v.SetDefault("ledger.seed_wallets", []map[string]any{
		{"name": "Cash", "balance": "0"},
		{"name": "Bank", "balance": "0"},
	})
	v.SetDefault("ledger.command_ttl", "10m")
	v.SetDefault("storage.backend", BackendMemory)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: FLG_STORAGE_BACKEND -> storage.backend
	v.SetEnvPrefix("FLG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
