package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port     int
	LogLevel string
	Env      string
	Backend  BackendConfig
	Page     PageConfig
	Limits   LimitsConfig
}

// BackendConfig holds the remote koi shipping API configuration
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// PageConfig holds pagination defaults for list views
type PageConfig struct {
	OrdersPerPage       int
	TransactionsPerPage int
}

// LimitsConfig holds rate limiting knobs for the gateway surface
type LimitsConfig struct {
	GlobalMaxTokens   float64
	GlobalRefillRate  float64
	IPMaxTokens       float64
	IPRefillRate      float64
	TrustForwardedFor bool
}

// getEnv retrieves the value of an environment variable or returns a default value if not set.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

// getEnvInt parses an integer environment variable, falling back to a default.
func getEnvInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, strconv.Itoa(defaultValue))

	v, err := strconv.Atoi(raw)

	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

// Load reads the configuration from environment variables and returns a Config struct.
func Load() (*Config, error) {
	port, err := getEnvInt("PORT", 8080)

	if err != nil {
		return nil, err
	}

	timeoutSec, err := getEnvInt("BACKEND_TIMEOUT_SECONDS", 10)

	if err != nil {
		return nil, err
	}

	ordersPerPage, err := getEnvInt("ORDERS_PER_PAGE", 5)

	if err != nil {
		return nil, err
	}

	transactionsPerPage, err := getEnvInt("TRANSACTIONS_PER_PAGE", 5)

	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     port,
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Env:      getEnv("APP_ENV", "development"),
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:5156"),
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		Page: PageConfig{
			OrdersPerPage:       ordersPerPage,
			TransactionsPerPage: transactionsPerPage,
		},
		Limits: LimitsConfig{
			GlobalMaxTokens:   200,
			GlobalRefillRate:  100,
			IPMaxTokens:       20,
			IPRefillRate:      10,
			TrustForwardedFor: getEnv("TRUST_FORWARDED_FOR", "false") == "true",
		},
	}, nil
}
