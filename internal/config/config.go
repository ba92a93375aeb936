package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Provider
		Cache
		History
		Warmup
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // silent, error, warn or info
	}
	Provider struct {
		BaseURL       string
		DefaultAPIKey string        // Used when the user has not saved their own key
		Timeout       time.Duration // 0 leaves requests to the transport defaults
	}
	Cache struct {
		RatesTTL        time.Duration
		CurrencyListTTL time.Duration
	}
	History struct {
		Limit int
	}
	Warmup struct {
		Enabled  bool
		Schedule string // Cron format: "0 */6 * * *" = every 6 hours
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

// LoadDotEnv loads path (".env" when empty) into the environment if it
// exists. Variables already set are not overridden.
func LoadDotEnv(path string) {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("Failed to load %s: %v", path, err)
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8189)
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "silent")

	// Rate provider defaults
	v.SetDefault("provider_base_url", DefaultProviderBaseURL)
	v.SetDefault("provider_default_api_key", "")
	v.SetDefault("provider_timeout", "0s")

	// Cache lifetimes
	v.SetDefault("rates_ttl", "12h")
	v.SetDefault("currency_list_ttl", "168h") // 7 days
	v.SetDefault("history_limit", 20)

	// Background warm-up defaults
	v.SetDefault("warmup_enabled", false)
	v.SetDefault("warmup_schedule", DefaultWarmupSchedule)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "5m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Provider: Provider{
			BaseURL:       v.GetString("PROVIDER_BASE_URL"),
			DefaultAPIKey: v.GetString("PROVIDER_DEFAULT_API_KEY"),
			Timeout:       v.GetDuration("PROVIDER_TIMEOUT"),
		},
		Cache: Cache{
			RatesTTL:        v.GetDuration("RATES_TTL"),
			CurrencyListTTL: v.GetDuration("CURRENCY_LIST_TTL"),
		},
		History: History{
			Limit: v.GetInt("HISTORY_LIMIT"),
		},
		Warmup: Warmup{
			Enabled:  v.GetBool("WARMUP_ENABLED"),
			Schedule: v.GetString("WARMUP_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
