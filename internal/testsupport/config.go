package testsupport

import (
	"path/filepath"
	"testing"

	"greenroom/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.VideoDir = filepath.Join(base, "videos")
	cfg.Paths.PyVideoDir = filepath.Join(base, "pyvideo")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Conference.Year = 2025
	cfg.Conference.StartDate = "2025-10-17"
	cfg.Conference.EndDate = "2025-10-18"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithFetchEndpoint points the fetch configuration at a test server.
func WithFetchEndpoint(baseURL, token string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Fetch.BaseURL = baseURL
		cfg.Fetch.Token = token
	}
}

// WithConfidenceThreshold overrides the attribution confidence gate.
func WithConfidenceThreshold(threshold float64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Attribution.ConfidenceThreshold = threshold
	}
}
