package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Search    SearchConfig    `yaml:"search"`
	Fetcher   FetcherConfig   `yaml:"fetcher"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Cleanup   CleanupConfig   `yaml:"cleanup"`
	Logging   LoggingConfig   `yaml:"logging"`
	Timezone  string          `yaml:"timezone"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Type     string         `yaml:"type"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// MySQLConfig contains MySQL connection settings
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// SearchConfig contains search engine settings
type SearchConfig struct {
	Meilisearch MeilisearchConfig `yaml:"meilisearch"`
}

// MeilisearchConfig contains Meilisearch connection settings
type MeilisearchConfig struct {
	Host   string `yaml:"host"`
	APIKey string `yaml:"api_key"`
}

// FetcherConfig contains settings for the data.gov.in price fetcher
type FetcherConfig struct {
	BaseURL         string   `yaml:"base_url"`
	ResourceID      string   `yaml:"resource_id"`
	APIKey          string   `yaml:"api_key"`
	TimeoutSeconds  int      `yaml:"timeout_seconds"`
	RecordLimit     int      `yaml:"record_limit"`
	TargetStates    []string `yaml:"target_states"`
	SourceTag       string   `yaml:"source_tag"`
	DailyRunEnabled bool     `yaml:"daily_run_enabled"`
	DailyRunTime    string   `yaml:"daily_run_time"`
}

// RateLimitConfig contains rate limiting settings for the manual fetch trigger
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
	RequestsPerHour   int  `yaml:"requests_per_hour"`
	RequestsPerDay    int  `yaml:"requests_per_day"`
}

// CleanupConfig contains price retention settings
type CleanupConfig struct {
	RetentionDays    int `yaml:"retention_days"`
	MaxDeletionCount int `yaml:"max_deletion_count"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	LogRequests bool   `yaml:"log_requests"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Fetcher: FetcherConfig{
			BaseURL:         "https://api.data.gov.in/resource",
			ResourceID:      "9ef84268-d588-465a-a308-a864a43d0070",
			TimeoutSeconds:  60,
			RecordLimit:     2000,
			TargetStates:    []string{"Andhra Pradesh", "Telangana"},
			SourceTag:       "data.gov.in",
			DailyRunEnabled: false,
			DailyRunTime:    "07:00",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 2,
			RequestsPerHour:   20,
			RequestsPerDay:    100,
		},
		Cleanup: CleanupConfig{
			RetentionDays:    365,
			MaxDeletionCount: 100000,
		},
		Logging: LoggingConfig{
			Level:       "info",
			LogRequests: true,
		},
		Timezone: "Asia/Kolkata",
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filepath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return config, nil
	}

	// Read file
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment variables win over file values for secrets
	if key := os.Getenv("DATA_GOV_API_KEY"); key != "" {
		config.Fetcher.APIKey = key
	}

	return config, nil
}

// GetTimeout returns the fetch timeout as a duration
func (c *FetcherConfig) GetTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ResourceURL returns the full URL of the configured API resource
func (c *FetcherConfig) ResourceURL() string {
	return c.BaseURL + "/" + c.ResourceID
}
