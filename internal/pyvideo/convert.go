package pyvideo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"greenroom/internal/attribute"
	"greenroom/internal/logging"
	"greenroom/internal/services"
)

// timestampRule matches chapter-marker lines ("12:34 - Topic") that
// uploaders embed in descriptions. They are noise in the metadata tree.
var timestampRule = regexp.MustCompile(`^\d+:\d\d - `)

// Result is the outcome of one conversion run.
type Result struct {
	Talks []Talk

	// NeedsReview lists titles that resolved with no speakers and must be
	// fixed by hand before the tree is submitted.
	NeedsReview []string
}

// Converter turns downloaded video metadata into a talk metadata tree,
// attributing speakers from the conference schedule along the way.
type Converter struct {
	conf    Conference
	matcher *attribute.Matcher
	logger  *slog.Logger
}

// NewConverter builds a converter for conf. A nil logger disables logging.
func NewConverter(conf Conference, matcher *attribute.Matcher, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Converter{conf: conf, matcher: matcher, logger: logger}
}

// Convert reads every video metadata document in infoDir, in name order,
// and produces the talk list for the conference tree. Non-video documents
// (playlist stubs) are skipped.
func (c *Converter) Convert(ctx context.Context, infoDir string) (*Result, error) {
	entries, err := os.ReadDir(infoDir)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pyvideo", "convert", "read metadata directory", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	result := &Result{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(infoDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		var meta VideoMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			return nil, services.Wrap(services.ErrValidation, "pyvideo", "convert",
				fmt.Sprintf("parse %s", name), err)
		}
		if meta.Type != "video" {
			c.logger.Debug("skipping non-video entry",
				logging.String("file", name),
				logging.String("type", meta.Type))
			continue
		}

		talk := c.talkFromVideo(meta)
		if c.attributeSpeakers(&talk) {
			result.NeedsReview = append(result.NeedsReview, talk.Title)
		}
		result.Talks = append(result.Talks, talk)
	}

	c.logger.Info("converted video metadata",
		logging.Int("talks", len(result.Talks)),
		logging.Int("needs_review", len(result.NeedsReview)))
	return result, nil
}

func (c *Converter) talkFromVideo(meta VideoMetadata) Talk {
	return Talk{
		Title:         meta.Title,
		Description:   c.cleanDescription(meta.Description),
		Speakers:      []string{},
		Tags:          []string{},
		Language:      "eng",
		Recorded:      c.recordedDate(meta.UploadDate),
		Duration:      meta.Duration,
		CopyrightText: c.conf.CopyrightText,
		RelatedURLs: []RelatedURL{
			{Label: "Conference schedule", URL: c.conf.ScheduleURL},
			{Label: "Full playlist", URL: c.conf.PlaylistURL},
		},
		Videos: []VideoLink{
			{Type: "youtube", URL: meta.WebpageURL},
		},
		ThumbnailURL: meta.Thumbnail,
	}
}

// attributeSpeakers resolves the talk's speakers from the schedule and
// reports whether the talk still needs manual review.
func (c *Converter) attributeSpeakers(talk *Talk) bool {
	if c.matcher == nil {
		return true
	}
	attributed := c.matcher.Resolve(talk.Title)
	if attributed.NeedsReview {
		return true
	}
	talk.Title = attributed.Title
	talk.Speakers = append(talk.Speakers, attributed.Speakers...)
	return false
}

// cleanDescription drops configured leading/trailing boilerplate lines and
// strips chapter-marker lines.
func (c *Converter) cleanDescription(description string) string {
	lines := strings.Split(description, "\n")
	if c.conf.DropFirstLines > 0 && c.conf.DropFirstLines <= len(lines) {
		lines = lines[c.conf.DropFirstLines:]
	}
	if c.conf.DropLastLines > 0 && c.conf.DropLastLines <= len(lines) {
		lines = lines[:len(lines)-c.conf.DropLastLines]
	}

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if timestampRule.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// recordedDate parses an upload date and clamps it into the conference
// range. Uploads trail the event, so an out-of-range or unparseable date
// resolves to the nearest conference day rather than failing the run.
func (c *Converter) recordedDate(uploadDate string) string {
	recorded, err := time.Parse("20060102", uploadDate)
	if err != nil {
		recorded = c.conf.Start
	}
	if recorded.Before(c.conf.Start) {
		recorded = c.conf.Start
	}
	if recorded.After(c.conf.End) {
		recorded = c.conf.End
	}
	return recorded.Format("2006-01-02")
}
