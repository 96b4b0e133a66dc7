package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	APIBaseURL string `validate:"required,url"`
	StateDB    string `validate:"required"`

	LogLevel    string `validate:"required,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	LogFormat   string `validate:"required,oneof=json text"`
	LogDir      string
	ServiceName string `validate:"required"`
	Version     string
	Environment string `validate:"required"`

	// LogRetention is how many earlier session logs stay in LogDir
	LogRetention int `validate:"gte=0"`

	RequestTimeout   time.Duration `validate:"gt=0"`
	OrderCacheSize   int           `validate:"gt=0"`
	OrderCacheTTL    time.Duration `validate:"gt=0"`
	FeedPollInterval time.Duration `validate:"gt=0"`

	// Stub backend settings (cmd/stubapi)
	StubPort      int           `validate:"gte=0,lte=65535"`
	StubAccessTTL time.Duration `validate:"gt=0"`
	StubSeedFile  string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:       getEnv("BURGER_API_URL", DefaultAPIBaseURL),
		StateDB:          getEnv("STATE_DB", DefaultStateDB),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		LogDir:           getEnv("LOG_DIR", ""),
		LogRetention:     getEnvAsInt("LOG_RETENTION", DefaultLogRetention),
		ServiceName:      getEnv("SERVICE_NAME", DefaultServiceName),
		Version:          getEnv("VERSION", "dev"),
		Environment:      getEnv("ENVIRONMENT", "dev"),
		RequestTimeout:   getEnvAsDuration("REQUEST_TIMEOUT", DefaultRequestTimeout),
		OrderCacheSize:   getEnvAsInt("ORDER_CACHE_SIZE", DefaultOrderCacheSize),
		OrderCacheTTL:    getEnvAsDuration("ORDER_CACHE_TTL", DefaultOrderCacheTTL),
		FeedPollInterval: getEnvAsDuration("FEED_POLL_INTERVAL", DefaultFeedPollInterval),
		StubAccessTTL:    getEnvAsDuration("STUB_ACCESS_TTL", DefaultStubAccessTTL),
		StubSeedFile:     getEnv("STUB_SEED_FILE", ""),
	}

	portStr := getEnv("STUB_PORT", strconv.Itoa(DefaultStubPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STUB_PORT value: %w", err)
	}
	cfg.StubPort = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints declared on the struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or malformed
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a time.Duration variable ("30s", "5m"), falling back to the default
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
