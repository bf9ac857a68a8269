package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the filing operations dashboard service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8974"`

	// Summary payload source (the external scheduler endpoint). Empty
	// disables polling; payloads can still be pushed to /api/summary.
	SummaryURL     string        `env:"SUMMARY_URL"`
	PollInterval   time.Duration `env:"POLL_INTERVAL,default=60s"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,default=30s"`

	// Filing-authority announcements feed (RSS); empty disables the panel
	AnnouncementsURL string `env:"ANNOUNCEMENTS_URL"`

	// OpenAI configuration (optional; empty key disables insights)
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL,default=gpt-4.1"`

	// GCP configuration (optional for local deployments)
	GCPProjectID string `env:"GCP_PROJECT_ID"`
	GCSBucket    string `env:"GCS_BUCKET"`

	// Local snapshot directory
	LocalSnapshotsDir string `env:"LOCAL_SNAPSHOTS_DIR,default=./snapshots"`

	// Sample data window for charts that have not received a payload yet
	SampleDays int `env:"SAMPLE_DAYS,default=7"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.SampleDays <= 0 {
		return nil, fmt.Errorf("SAMPLE_DAYS must be positive, got %d", cfg.SampleDays)
	}
	return &cfg, nil
}
