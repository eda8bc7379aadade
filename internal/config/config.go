package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"wemint/internal/catalog"
)

type Config struct {
	Port     string
	Store    StoreConfig
	Checkout CheckoutConfig
	Metrics  MetricsConfig
	Log      LogConfig
	// Seed writes the built-in catalog when the slot has never been written.
	Seed bool
	// TrustProxy honours X-Forwarded-For when keying the checkout rate limit.
	TrustProxy bool
}

type StoreConfig struct {
	Driver      string
	SlotKey     string
	BoltPath    string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type CheckoutConfig struct {
	Delay          time.Duration
	RateLimit      int
	RateLimitEvery time.Duration
}

type MetricsConfig struct {
	Enabled bool
	Token   string
}

type LogConfig struct {
	Level string
	File  string
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Store: StoreConfig{
			Driver:        strings.ToLower(getEnv("STORE_DRIVER", catalog.DriverMemory)),
			SlotKey:       getEnv("SLOT_KEY", catalog.DefaultSlotKey),
			BoltPath:      getEnv("BOLT_PATH", "wemint.db"),
			DatabaseURL:   getEnv("DATABASE_URL", ""),
			RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
		},
		Checkout: CheckoutConfig{
			Delay:          getEnvAsDuration("CHECKOUT_DELAY", 2*time.Second),
			RateLimit:      getEnvAsInt("CHECKOUT_RATE_LIMIT", 30),
			RateLimitEvery: getEnvAsDuration("CHECKOUT_RATE_WINDOW", time.Minute),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
			Token:   getEnv("METRICS_TOKEN", ""),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
		Seed:       getEnvAsBool("SEED", true),
		TrustProxy: getEnvAsBool("TRUST_PROXY", false),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case catalog.DriverMemory, catalog.DriverBolt, catalog.DriverRedis:
	case catalog.DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store driver")
		}
	default:
		return errors.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Checkout.Delay < 0 {
		return errors.New("CHECKOUT_DELAY must not be negative")
	}
	return nil
}

func (c *Config) SlotOptions() catalog.SlotOptions {
	return catalog.SlotOptions{
		Driver:        c.Store.Driver,
		Key:           c.Store.SlotKey,
		BoltPath:      c.Store.BoltPath,
		DatabaseURL:   c.Store.DatabaseURL,
		RedisAddr:     c.Store.RedisAddr,
		RedisPassword: c.Store.RedisPassword,
		RedisDB:       c.Store.RedisDB,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
