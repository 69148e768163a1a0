package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validate checks configuration invariants after normalization.
func (c *Config) Validate() error {
	var problems []string

	if c.Conference.Year < 2000 || c.Conference.Year > 2100 {
		problems = append(problems, fmt.Sprintf("conference.year %d is out of range", c.Conference.Year))
	}
	if c.Fetch.Workers > 12 {
		problems = append(problems, fmt.Sprintf("fetch.workers %d is too high (max 12; high counts hit rate limits)", c.Fetch.Workers))
	}
	for _, d := range []struct{ field, value string }{
		{"conference.start_date", c.Conference.StartDate},
		{"conference.end_date", c.Conference.EndDate},
	} {
		if d.value == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d.value); err != nil {
			problems = append(problems, fmt.Sprintf("%s %q is not a YYYY-MM-DD date", d.field, d.value))
		}
	}
	if c.Attribution.ConfidenceThreshold < 0 || c.Attribution.ConfidenceThreshold > 100 {
		problems = append(problems, fmt.Sprintf("attribution.confidence_threshold %.1f must be between 0 and 100", c.Attribution.ConfidenceThreshold))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q must be console or json", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
