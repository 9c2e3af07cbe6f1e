package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// StoreDriver selects the persistence backend.
type StoreDriver string

const (
	StoreMongo    StoreDriver = "mongo"
	StorePostgres StoreDriver = "postgres"
	StoreMemory   StoreDriver = "memory"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                 string
	StoreDriver          StoreDriver
	MongoURI             string
	MongoDatabase        string
	SubmissionCollection string
	RestaurantCollection string
	ConnectTimeout       time.Duration
	PostgresDSN          string
	RequestTimeout       time.Duration
	AllowedOrigins       []string
	PriceRangeFallback   string
	LogLevel             slog.Level
	LogConcise           bool
}

// Load reads an optional .env file plus the environment and returns a fully
// populated Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	driver, err := parseStoreDriver(envOrDefault("STORE_DRIVER", string(StoreMongo)))
	if err != nil {
		return Config{}, err
	}

	connectTimeout, err := parseDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	requestTimeout, err := parseDuration("REQUEST_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(envOrDefault("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	concise := true
	if raw := strings.TrimSpace(os.Getenv("LOG_CONCISE")); raw != "" {
		concise, err = strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("LOG_CONCISE: %w", err)
		}
	}

	cfg := Config{
		Addr:                 envOrDefault("HTTP_ADDR", ":8080"),
		StoreDriver:          driver,
		MongoURI:             envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:        envOrDefault("MONGO_DB", "restaurant-recs"),
		SubmissionCollection: envOrDefault("SUBMISSION_COLLECTION", "submissions"),
		RestaurantCollection: envOrDefault("RESTAURANT_COLLECTION", "restaurants"),
		ConnectTimeout:       connectTimeout,
		PostgresDSN:          strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		RequestTimeout:       requestTimeout,
		AllowedOrigins:       parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		PriceRangeFallback:   envOrDefault("PRICE_RANGE_FALLBACK", "정보 없음"),
		LogLevel:             level,
		LogConcise:           concise,
	}

	if cfg.StoreDriver == StorePostgres && cfg.PostgresDSN == "" {
		return Config{}, fmt.Errorf("POSTGRES_DSN must be configured when STORE_DRIVER=postgres")
	}
	return cfg, nil
}

func parseStoreDriver(raw string) (StoreDriver, error) {
	switch d := StoreDriver(strings.ToLower(strings.TrimSpace(raw))); d {
	case StoreMongo, StorePostgres, StoreMemory:
		return d, nil
	}
	return "", fmt.Errorf("STORE_DRIVER: unsupported driver %q", raw)
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
