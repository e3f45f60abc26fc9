package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"nivesh/internal/currency"
	"nivesh/internal/logger"
	"nivesh/internal/valuation"
)

// Config holds application configuration
type Config struct {
	Env  string
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Auth
	JWTSecret      string
	PipelineAPIKey string

	// Valuation
	DisplayCurrency currency.Code
	CashPolicy      valuation.CashPolicy
	MemoSize        int
	SessionIdle     time.Duration

	// Exchange rate
	ForexBaseURL        string
	ForexTimeout        time.Duration
	ForexRateLimit      int
	RateMaxAge          time.Duration
	RateRefreshSchedule string
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug(".env file not found, using environment")
	}

	cfg := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "nivesh"),
		DBPassword: getEnv("DB_PASSWORD", "nivesh"),
		DBName:     getEnv("DB_NAME", "nivesh"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:      getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		PipelineAPIKey: getEnv("PIPELINE_API_KEY", ""),

		ForexBaseURL: getEnv("FOREX_BASE_URL", ""),
	}

	// Set but empty disables the scheduled refresh.
	cfg.RateRefreshSchedule = "@every 6h"
	if v, ok := os.LookupEnv("RATE_REFRESH_SCHEDULE"); ok {
		cfg.RateRefreshSchedule = v
	}

	var err error
	if cfg.DisplayCurrency, err = currency.ParseCode(getEnv("DISPLAY_CURRENCY", "INR")); err != nil {
		return nil, fmt.Errorf("DISPLAY_CURRENCY: %w", err)
	}

	if path := getEnv("CASH_POLICY_FILE", ""); path != "" {
		if cfg.CashPolicy, err = valuation.LoadCashPolicy(path); err != nil {
			return nil, fmt.Errorf("CASH_POLICY_FILE: %w", err)
		}
	} else {
		name := getEnv("CASH_POLICY", "separate")
		p, ok := valuation.PolicyByName(name)
		if !ok {
			return nil, fmt.Errorf("CASH_POLICY: unknown policy %q (use separate or merged)", name)
		}
		cfg.CashPolicy = p
	}

	if cfg.ForexTimeout, err = getDuration("FOREX_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateMaxAge, err = getDuration("RATE_MAX_AGE", 6*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ForexRateLimit, err = getInt("FOREX_RATE_LIMIT", 2); err != nil {
		return nil, err
	}
	if cfg.MemoSize, err = getInt("MEMO_SIZE", 128); err != nil {
		return nil, err
	}
	if cfg.SessionIdle, err = getDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DatabaseURL returns the postgres URL used by golang-migrate.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, raw, err)
	}
	return n, nil
}
