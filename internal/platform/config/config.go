package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	// ECB reference rates
	ECBBaseURL            string
	ECBTargetCurrency     string
	ECBFallbackWindowDays int
	ECBSingleTimeout      time.Duration
	ECBRangeTimeout       time.Duration

	// Read-through rate cache in front of the exchange_rates table
	RateCacheDriver string // "memory", "redis" or "none"
	RateCacheTTL    time.Duration
	RedisURL        string

	RateLimit          string // ulule/limiter format, e.g. "100-M"
	CORSAllowedOrigins []string

	BackfillPause time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("ECB_BASE_URL", "https://data-api.ecb.europa.eu/service/data/EXR")
	v.SetDefault("ECB_TARGET_CURRENCY", "EUR")
	v.SetDefault("ECB_FALLBACK_WINDOW_DAYS", 7)
	v.SetDefault("ECB_SINGLE_TIMEOUT", "10s")
	v.SetDefault("ECB_RANGE_TIMEOUT", "30s")
	v.SetDefault("RATE_CACHE_DRIVER", "memory")
	v.SetDefault("RATE_CACHE_TTL", "24h")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("BACKFILL_PAUSE", "200ms")

	v.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")

	cfg.ECBBaseURL = strings.TrimRight(v.GetString("ECB_BASE_URL"), "/")
	cfg.ECBTargetCurrency = strings.ToUpper(strings.TrimSpace(v.GetString("ECB_TARGET_CURRENCY")))
	if len(cfg.ECBTargetCurrency) != 3 {
		log.Printf("Warning: Invalid value for ECB_TARGET_CURRENCY ('%s'). Defaulting to EUR.\n", cfg.ECBTargetCurrency)
		cfg.ECBTargetCurrency = "EUR"
	}

	cfg.ECBFallbackWindowDays = v.GetInt("ECB_FALLBACK_WINDOW_DAYS")
	if cfg.ECBFallbackWindowDays <= 0 {
		log.Printf("Warning: Invalid value for ECB_FALLBACK_WINDOW_DAYS (%d). Defaulting to 7.\n", cfg.ECBFallbackWindowDays)
		cfg.ECBFallbackWindowDays = 7
	}

	cfg.ECBSingleTimeout = durationOrDefault(v, "ECB_SINGLE_TIMEOUT", 10*time.Second)
	cfg.ECBRangeTimeout = durationOrDefault(v, "ECB_RANGE_TIMEOUT", 30*time.Second)

	cfg.RateCacheDriver = strings.ToLower(v.GetString("RATE_CACHE_DRIVER"))
	switch cfg.RateCacheDriver {
	case "memory", "redis", "none":
	default:
		log.Printf("Warning: Unknown RATE_CACHE_DRIVER ('%s'). Defaulting to memory.\n", cfg.RateCacheDriver)
		cfg.RateCacheDriver = "memory"
	}
	cfg.RateCacheTTL = durationOrDefault(v, "RATE_CACHE_TTL", 24*time.Hour)
	cfg.RedisURL = v.GetString("REDIS_URL")
	if cfg.RateCacheDriver == "redis" && cfg.RedisURL == "" {
		log.Println("Warning: RATE_CACHE_DRIVER is redis but REDIS_URL is not set. Falling back to memory.")
		cfg.RateCacheDriver = "memory"
	}

	cfg.RateLimit = v.GetString("RATE_LIMIT")
	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.BackfillPause = durationOrDefault(v, "BACKFILL_PAUSE", 200*time.Millisecond)

	return cfg, nil
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
