package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the remote API the storefront talks to unless
// CARTIFY_API_BASE_URL overrides it.
const DefaultBaseURL = "https://cartify.runasp.net"

// Config holds the loaded configuration
type Config struct {
	Env            string
	LogFile        string // optional JSON log file next to the console
	APIBaseURL     string
	LoginURL       string
	RequestTimeout time.Duration // zero keeps the transport default
	Addr           string
	AllowedOrigins []string
	Storage        StorageConfig
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend       string
	FilePath      string
	Namespace     string
	RedisURL      string
	DynamoDBTable string
}

// Load reads .env (if present) and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Env:        getEnv("APP_ENV", "development"),
		LogFile:    os.Getenv("LOG_FILE"),
		APIBaseURL: strings.TrimSuffix(getEnv("CARTIFY_API_BASE_URL", DefaultBaseURL), "/"),
		LoginURL:   getEnv("CARTIFY_LOGIN_URL", "index.html#login"),
		Addr:       getEnv("STOREFRONT_ADDR", "127.0.0.1:8000"),
		Storage: StorageConfig{
			Backend:       strings.ToLower(getEnv("STORAGE_BACKEND", "file")),
			FilePath:      getEnv("STORAGE_FILE", ".cartify/storage.json"),
			Namespace:     getEnv("STORAGE_NAMESPACE", "cartify"),
			RedisURL:      os.Getenv("REDIS_URL"),
			DynamoDBTable: os.Getenv("DYNAMODB_TABLE"),
		},
	}

	if raw := os.Getenv("CARTIFY_REQUEST_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CARTIFY_REQUEST_TIMEOUT %q: %w", raw, err)
		}
		cfg.RequestTimeout = d
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(strings.TrimSuffix(o, "/")); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the selected storage backend has what it needs.
func (c Config) Validate() error {
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("CARTIFY_API_BASE_URL must be an absolute http(s) URL, got %q", c.APIBaseURL)
	}
	switch c.Storage.Backend {
	case "memory":
	case "file":
		if c.Storage.FilePath == "" {
			return fmt.Errorf("STORAGE_FILE is required for the file backend")
		}
	case "redis":
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis backend")
		}
	case "dynamodb":
		if c.Storage.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required for the dynamodb backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	return nil
}

// Helper to get an environment variable or return a default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
