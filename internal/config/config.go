package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Environment ("production" switches logging to JSON)
	Env string

	// Storage
	DataDir string

	// Token lifecycle
	TokenSecret   string
	TokenTTL      time.Duration
	RefreshBuffer time.Duration
}

// minSecretBytes is the smallest accepted signing key: 256 bits.
const minSecretBytes = 32

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:     getEnv("ENV", "development"),
		DataDir: getEnv("DATA_DIR", "data"),
	}

	// The signing key must be supplied externally and persist across
	// restarts; a per-process random key would invalidate every
	// previously issued token.
	secret := os.Getenv("TOKEN_SECRET")
	if len(secret) < minSecretBytes {
		return nil, fmt.Errorf("TOKEN_SECRET must be set and at least %d bytes", minSecretBytes)
	}
	config.TokenSecret = secret

	ttl, err := getEnvDuration("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	config.TokenTTL = ttl

	buffer, err := getEnvDuration("REFRESH_BUFFER", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	if buffer >= ttl {
		return nil, fmt.Errorf("REFRESH_BUFFER (%s) must be shorter than TOKEN_TTL (%s)", buffer, ttl)
	}
	config.RefreshBuffer = buffer

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration-valued environment variable or
// returns a default value.
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return d, nil
}
