package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Config holds service configuration. Values come from an optional YAML file
// (CONFIG_FILE, default config.yaml) with environment variables taking precedence.
type Config struct {
	Port  string `yaml:"port"`
	State string `yaml:"state"` // default state scope for district listings

	// Trend series window, in months, served by /api/district/{id}/trend.
	TrendWindowMonths int `yaml:"trend_window_months"`

	// Per-client request budget.
	RateLimitPerHour int `yaml:"rate_limit_per_hour"`

	// Cache freshness windows.
	GeoCacheTTLMinutes int `yaml:"geo_cache_ttl_minutes"`
	SelectionTTLHours  int `yaml:"selection_ttl_hours"`
	StateAvgTTLMinutes int `yaml:"state_avg_ttl_minutes"`

	// Ingestion job.
	SyncSchedule      string `yaml:"sync_schedule"` // cron spec, empty disables
	DataGovAPIKey     string `yaml:"data_gov_api_key"`
	DataGovResourceID string `yaml:"data_gov_resource_id"`

	// bcrypt hash of the admin key required by write endpoints. Empty disables them.
	AdminKeyHash string `yaml:"admin_key_hash"`
}

// Load reads the YAML config file if present, applies defaults, then env overrides.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               "5050",
		State:              "Gujarat",
		TrendWindowMonths:  12,
		RateLimitPerHour:   100,
		GeoCacheTTLMinutes: 60,
		SelectionTTLHours:  24,
		StateAvgTTLMinutes: 60,
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("STATE"); v != "" {
		cfg.State = v
	}
	if v := os.Getenv("TREND_WINDOW_MONTHS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("TREND_WINDOW_MONTHS: %w", err)
		}
		cfg.TrendWindowMonths = n
	}
	if v := os.Getenv("RATE_LIMIT_PER_HOUR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("RATE_LIMIT_PER_HOUR: %w", err)
		}
		cfg.RateLimitPerHour = n
	}
	if v := os.Getenv("SYNC_SCHEDULE"); v != "" {
		cfg.SyncSchedule = v
	}
	if v := os.Getenv("DATA_GOV_API_KEY"); v != "" {
		cfg.DataGovAPIKey = v
	}
	if v := os.Getenv("DATA_GOV_RESOURCE_ID"); v != "" {
		cfg.DataGovResourceID = v
	}
	if v := os.Getenv("ADMIN_KEY_HASH"); v != "" {
		cfg.AdminKeyHash = v
	}

	cfg.State = strings.TrimSpace(cfg.State)
	if cfg.TrendWindowMonths <= 0 {
		cfg.TrendWindowMonths = 12
	}
	return cfg, nil
}
