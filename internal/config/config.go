package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	VideoDir   string `toml:"video_dir"`
	PyVideoDir string `toml:"pyvideo_dir"`
	StateDir   string `toml:"state_dir"`
	LogDir     string `toml:"log_dir"`
}

// Conference contains metadata about the conference being published.
type Conference struct {
	Name         string `toml:"name"`
	Year         int    `toml:"year"`
	ScheduleURL  string `toml:"schedule_url"`
	PlaylistURL  string `toml:"playlist_url"`
	MetadataFile string `toml:"metadata_file"`

	// StartDate and EndDate bound the conference in YYYY-MM-DD form. Recorded
	// dates in generated metadata are clamped into this range because upload
	// dates trail the event by days or weeks.
	StartDate string `toml:"start_date"`
	EndDate   string `toml:"end_date"`
}

// Dates returns the parsed conference date range. Empty fields fall back to
// January 1 of the conference year so clamping still has a stable anchor.
func (c Conference) Dates() (time.Time, time.Time) {
	fallback := time.Date(c.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	start, err := time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		start = fallback
	}
	end, err := time.Parse("2006-01-02", c.EndDate)
	if err != nil {
		end = start
	}
	return start, end
}

// Fetch contains configuration for the download worker pool.
type Fetch struct {
	BaseURL        string `toml:"base_url"`
	Token          string `toml:"token"`
	Workers        int    `toml:"workers"`
	MaxRetries     int    `toml:"max_retries"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Attribution contains configuration for fuzzy speaker attribution.
type Attribution struct {
	// ConfidenceThreshold is the partial-similarity score (0-100) required to
	// accept a fuzzy title match automatically. Lower scores fall back to
	// pattern extraction, then manual review.
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for greenroom.
//
// Configuration sections by subsystem:
//   - Paths: video, pyvideo output, state, and log directories
//   - Conference: conference identity used in generated names and metadata
//   - Fetch: download endpoint and worker pool tuning
//   - Attribution: fuzzy matching confidence gate
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	Conference  Conference  `toml:"conference"`
	Fetch       Fetch       `toml:"fetch"`
	Attribution Attribution `toml:"attribution"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/greenroom/config.toml")
}

// SampleConfig returns the annotated sample configuration file contents.
func SampleConfig() string {
	return sampleConfig
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized. The boolean reports whether a
// config file was found; defaults are used when it was not.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("greenroom.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories greenroom writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ExpandPath expands a leading ~ and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
