package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Archive period labeling policies.
const (
	ArchivePeriodEpoch = "epoch"
	ArchivePeriodMonth = "month"
)

// Claim eligibility policies.
const (
	EligibilityArchive = "archive"
	EligibilityOpen    = "open"
)

// Config struct to hold the configuration settings
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	NATS      NATSConfig      `yaml:"nats"`
	Auth      AuthConfig      `yaml:"auth"`
	Rewards   RewardsConfig   `yaml:"rewards"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration. An empty URL disables event publishing.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// AuthConfig holds the static shared secrets.
type AuthConfig struct {
	SubmitSecret string `yaml:"submit_secret"`
	AdminSecret  string `yaml:"admin_secret"`
}

// RewardsConfig holds the epoch/claim policy choices.
type RewardsConfig struct {
	// ArchivePeriod labels snapshots by the advancing epoch number ("epoch")
	// or by the calendar month of the reset ("month").
	ArchivePeriod string `yaml:"archive_period"`
	// Eligibility gates claims on archive membership ("archive") or allows
	// any player once per epoch ("open").
	Eligibility string `yaml:"eligibility"`
}

// RateLimitConfig throttles score submissions.
type RateLimitConfig struct {
	SubmitPerSecond float64 `yaml:"submit_per_second"`
	SubmitBurst     int     `yaml:"submit_burst"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	applyEnvOverrides(&cfg)

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	cfg.Postgres.DSN = os.Getenv("DATABASE_URL")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	applyEnvOverrides(&cfg)

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("SUBMIT_SECRET"); v != "" {
		cfg.Auth.SubmitSecret = v
	}
	if v := os.Getenv("ADMIN_SECRET"); v != "" {
		cfg.Auth.AdminSecret = v
	}
	if v := os.Getenv("ARCHIVE_PERIOD"); v != "" {
		cfg.Rewards.ArchivePeriod = v
	}
	if v := os.Getenv("REWARD_ELIGIBILITY"); v != "" {
		cfg.Rewards.Eligibility = v
	}
	if v := os.Getenv("SUBMIT_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimit.SubmitPerSecond = f
		}
	}
	if v := os.Getenv("SUBMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit.SubmitBurst = n
		}
	}
}

func (cfg *Config) applyDefaults() {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Rewards.ArchivePeriod == "" {
		cfg.Rewards.ArchivePeriod = ArchivePeriodEpoch
	}
	if cfg.Rewards.Eligibility == "" {
		cfg.Rewards.Eligibility = EligibilityArchive
	}
	if cfg.RateLimit.SubmitPerSecond <= 0 {
		cfg.RateLimit.SubmitPerSecond = 50
	}
	if cfg.RateLimit.SubmitBurst <= 0 {
		cfg.RateLimit.SubmitBurst = 100
	}
}

func (cfg *Config) validate() error {
	if cfg.Postgres.DSN == "" {
		return fmt.Errorf("postgres.dsn is required")
	}
	switch cfg.Rewards.ArchivePeriod {
	case ArchivePeriodEpoch, ArchivePeriodMonth:
	default:
		return fmt.Errorf("rewards.archive_period must be %q or %q, got %q",
			ArchivePeriodEpoch, ArchivePeriodMonth, cfg.Rewards.ArchivePeriod)
	}
	switch cfg.Rewards.Eligibility {
	case EligibilityArchive, EligibilityOpen:
	default:
		return fmt.Errorf("rewards.eligibility must be %q or %q, got %q",
			EligibilityArchive, EligibilityOpen, cfg.Rewards.Eligibility)
	}
	return nil
}
