package storage

import (
	"context"
	"testing"

	"taxdash/internal/config"
)

// testConfig loads a config with defaults for factory tests
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(context.Background())
	if err != nil {
		t.Fatalf("Failed to load test config: %v", err)
	}
	return cfg
}
