package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeConference()
	c.normalizeFetch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.VideoDir, err = expandPath(c.Paths.VideoDir); err != nil {
		return fmt.Errorf("paths.video_dir: %w", err)
	}
	if c.Paths.PyVideoDir, err = expandPath(c.Paths.PyVideoDir); err != nil {
		return fmt.Errorf("paths.pyvideo_dir: %w", err)
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeConference() {
	c.Conference.Name = strings.TrimSpace(c.Conference.Name)
	if c.Conference.Name == "" {
		c.Conference.Name = defaultConferenceName
	}
	c.Conference.ScheduleURL = strings.TrimSpace(c.Conference.ScheduleURL)
	c.Conference.PlaylistURL = strings.TrimSpace(c.Conference.PlaylistURL)
	c.Conference.MetadataFile = strings.TrimSpace(c.Conference.MetadataFile)
	c.Conference.StartDate = strings.TrimSpace(c.Conference.StartDate)
	c.Conference.EndDate = strings.TrimSpace(c.Conference.EndDate)
}

func (c *Config) normalizeFetch() {
	c.Fetch.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.Fetch.BaseURL), "/")
	if c.Fetch.Workers <= 0 {
		c.Fetch.Workers = defaultFetchWorkers
	}
	if c.Fetch.MaxRetries <= 0 {
		c.Fetch.MaxRetries = defaultFetchMaxRetries
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		c.Fetch.TimeoutSeconds = defaultFetchTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
