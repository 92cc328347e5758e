package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ProviderURL            string
	ProviderAPIKey         string
	ProviderRetryMax       int
	ProviderRetryBaseDelay time.Duration
	ProviderRatePerSecond  float64
	SearchLimit            int
	SearchCacheTTL         time.Duration
	QueueWorkers           int
	RentFallbackPercent    float64
	RefreshWorkerInterval  time.Duration
	ReportWorkerInterval   time.Duration
	DatabaseURL            string
	HTTPPort               string
	AdminAPIKey            string
	SheetsCredentialsJSON  string
	SheetsSpreadsheetID    string
	XLSXOutputPath         string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is applied first if present.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	return Config{
		ProviderURL:            envOrDefault("PROVIDER_URL", "https://api.rentcast.io/v1"),
		ProviderAPIKey:         envOrDefaultWarn("PROVIDER_API_KEY", ""),
		ProviderRetryMax:       envOrDefaultInt("PROVIDER_RETRY_MAX", 5),
		ProviderRetryBaseDelay: envOrDefaultDuration("PROVIDER_RETRY_BASE_DELAY", 2*time.Second),
		ProviderRatePerSecond:  envOrDefaultFloat("PROVIDER_RATE_PER_SECOND", 2),
		SearchLimit:            envOrDefaultInt("SEARCH_LIMIT", 50),
		SearchCacheTTL:         envOrDefaultDuration("SEARCH_CACHE_TTL", 6*time.Hour),
		QueueWorkers:           envOrDefaultInt("QUEUE_WORKERS", 2),
		RentFallbackPercent:    envOrDefaultFloat("RENT_FALLBACK_PERCENT", 0.8),
		RefreshWorkerInterval:  envOrDefaultDuration("REFRESH_WORKER_INTERVAL", 12*time.Hour),
		ReportWorkerInterval:   envOrDefaultDuration("REPORT_WORKER_INTERVAL", 24*time.Hour),
		DatabaseURL:            envOrDefaultWarn("DATABASE_URL", ""),
		HTTPPort:               envOrDefault("HTTP_PORT", "8080"),
		AdminAPIKey:            envOrDefault("ADMIN_API_KEY", ""),
		SheetsCredentialsJSON:  envOrDefault("SHEETS_CREDENTIALS_JSON", ""),
		SheetsSpreadsheetID:    envOrDefault("SHEETS_SPREADSHEET_ID", ""),
		XLSXOutputPath:         envOrDefault("XLSX_OUTPUT_PATH", "rentradar-report.xlsx"),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultWarn(key, defaultVal string) string {
	v := envOrDefault(key, defaultVal)
	if v == "" {
		slog.Warn("required env var not set", "key", key)
	}
	return v
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			slog.Warn("invalid float env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return f
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
