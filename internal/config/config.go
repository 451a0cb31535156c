package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the process configuration, read once at startup from the
// environment.
type Config struct {
	DatabaseURL string
	Port        int

	JWTSecret string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	StripeAPIKey        string
	StripeWebhookSecret string
	PlatformPriceID     string

	// SetupIntentFreshness bounds how long a pending setup intent is
	// reused before being replaced with a fresh one.
	SetupIntentFreshness time.Duration
}

// Load reads configuration from environment variables. Billing cannot
// run without gateway credentials and a platform price, so those are
// required.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		RedisAddr:            envOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		StripeAPIKey:         os.Getenv("STRIPE_API_KEY"),
		StripeWebhookSecret:  os.Getenv("STRIPE_WEBHOOK_SECRET"),
		PlatformPriceID:      os.Getenv("PLATFORM_PRICE_ID"),
		Port:                 8080,
		SetupIntentFreshness: 30 * time.Minute,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.StripeAPIKey == "" {
		return nil, fmt.Errorf("STRIPE_API_KEY environment variable is required")
	}
	if cfg.StripeWebhookSecret == "" {
		return nil, fmt.Errorf("STRIPE_WEBHOOK_SECRET environment variable is required")
	}
	if cfg.PlatformPriceID == "" {
		return nil, fmt.Errorf("PLATFORM_PRICE_ID environment variable is required")
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if freshStr := os.Getenv("BILLING_SETUP_INTENT_FRESHNESS"); freshStr != "" {
		d, err := time.ParseDuration(freshStr)
		if err != nil {
			return nil, fmt.Errorf("invalid BILLING_SETUP_INTENT_FRESHNESS %q: %w", freshStr, err)
		}
		cfg.SetupIntentFreshness = d
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
