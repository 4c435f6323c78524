package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is the process configuration, read from the environment
type Config struct {
	DatabaseURL     string // empty means in-memory history
	TrustTablesFile string // empty means built-in tables
	ModelFile       string // empty means no classifier

	EnableDomainAge bool
	EnableTLSCheck  bool

	LogLevel  string
	LogFormat string // "text" or "json"

	WhoisTimeout    time.Duration
	WhoisRatePerSec float64
	TLSTimeout      time.Duration

	ScanConcurrency int
}

// Load reads an optional .env file and then the environment. Malformed values
// are reported rather than silently replaced by defaults.
func Load() (*Config, error) {
	// A missing .env is the normal case outside development
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		TrustTablesFile: getEnv("TRUST_TABLES_FILE", ""),
		ModelFile:       getEnv("MODEL_FILE", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.EnableDomainAge, err = getBool("ENABLE_DOMAIN_AGE", false); err != nil {
		return nil, err
	}
	if cfg.EnableTLSCheck, err = getBool("ENABLE_TLS_CHECK", false); err != nil {
		return nil, err
	}
	if cfg.WhoisTimeout, err = getDuration("WHOIS_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.WhoisRatePerSec, err = getFloat("WHOIS_RATE_PER_SEC", 2); err != nil {
		return nil, err
	}
	if cfg.TLSTimeout, err = getDuration("TLS_TIMEOUT", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.ScanConcurrency, err = getInt("SCAN_CONCURRENCY", 8); err != nil {
		return nil, err
	}

	if cfg.ScanConcurrency < 1 {
		return nil, fmt.Errorf("SCAN_CONCURRENCY must be at least 1, got %d", cfg.ScanConcurrency)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// NewLogger builds the process logger from the configured level and format
func (c *Config) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
