package attribute

import (
	"log/slog"
	"regexp"
	"strings"

	"greenroom/internal/logging"
	"greenroom/internal/schedule"
	"greenroom/internal/textutil"
)

// DefaultConfidenceThreshold is the minimum partial-similarity score,
// in percent, required to accept a fuzzy title match.
const DefaultConfidenceThreshold = 95.0

var (
	yearSuffixRule  = regexp.MustCompile(`(?i)\s*\(pybay \d{4}\)`)
	speakerTailRule = regexp.MustCompile(`\s*[—–-]\s*[^—–-]+$`)

	// quotedTitleRule covers the published shape where both title and
	// speaker survive in the string itself, e.g.
	//   "Intro to Tracing" — Jane Doe (PyBay 2025)
	quotedTitleRule = regexp.MustCompile(`^"?(.+?)"?\s*(?:[—–-]|\bby\b)\s*(.+?)\s*\(\s*(?i:pybay)\s*\d{4}\s*\)\s*$`)

	// legacyTitleRule covers older uploads that never carried the
	// conference suffix at all.
	legacyTitleRule = regexp.MustCompile(`^"?(.+?)"?\s+(?:[—–-]|\bby\b)\s+([\w\s"',.-]+)$`)
)

// Entry is a single schedule talk indexed for fuzzy lookup.
type Entry struct {
	Title       string
	Speakers    []string
	Description string
}

// Catalog holds schedule talks keyed by normalized title. Entries keep
// their schedule order so equal-scoring candidates resolve the same way
// on every run.
type Catalog struct {
	keys    []string
	entries []Entry
}

// NewCatalog indexes schedule talks for attribution lookups.
func NewCatalog(talks []schedule.TalkRecord) *Catalog {
	c := &Catalog{}
	for _, talk := range talks {
		title := strings.TrimSpace(talk.Title)
		if title == "" {
			continue
		}
		c.keys = append(c.keys, NormalizeTitle(title))
		c.entries = append(c.entries, Entry{
			Title:       title,
			Speakers:    talk.SpeakerNames(),
			Description: talk.Description,
		})
	}
	return c
}

// Len reports the number of indexed talks.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// NormalizeTitle prepares a title for comparison: lowercase, trimmed,
// colons removed, and every dash variant folded to a plain hyphen.
func NormalizeTitle(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	title = strings.ReplaceAll(title, ":", "")
	return textutil.FoldDashes(title)
}

// Attribution is the outcome of resolving an external title against the
// schedule. When NeedsReview is set no confident match was found and the
// speakers list is empty.
type Attribution struct {
	Title       string
	Speakers    []string
	Confidence  float64
	NeedsReview bool
}

// Matcher resolves externally sourced video titles to schedule talks.
type Matcher struct {
	catalog   *Catalog
	threshold float64
	logger    *slog.Logger
}

// NewMatcher builds a matcher over catalog. A threshold of zero or below
// selects DefaultConfidenceThreshold; a nil logger disables logging.
func NewMatcher(catalog *Catalog, threshold float64, logger *slog.Logger) *Matcher {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Matcher{catalog: catalog, threshold: threshold, logger: logger}
}

// Resolve attributes an external video title to a schedule talk. It first
// scores the title against every catalog entry and accepts the best match
// at or above the confidence threshold; below that it falls back to
// parsing the speaker straight out of the title string. Resolve never
// fails: when neither path produces speakers the result is flagged for
// manual review.
func (m *Matcher) Resolve(externalTitle string) Attribution {
	needle := stripExternalTitle(externalTitle)

	bestScore := 0.0
	bestIndex := -1
	for i, key := range m.catalog.keys {
		score := PartialRatio(needle, key)
		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	if bestIndex >= 0 && bestScore >= m.threshold {
		entry := m.catalog.entries[bestIndex]
		m.logger.Debug("attributed title from schedule",
			logging.String("title", externalTitle),
			logging.String("matched", entry.Title),
			logging.Float64("confidence", bestScore))
		return Attribution{
			Title:      entry.Title,
			Speakers:   entry.Speakers,
			Confidence: bestScore,
		}
	}

	if title, speakers, ok := parseTitleSpeakers(externalTitle); ok {
		m.logger.Debug("attributed title from embedded speaker",
			logging.String("title", externalTitle),
			logging.String("parsed", title))
		return Attribution{Title: title, Speakers: speakers, Confidence: bestScore}
	}

	m.logger.Warn("no confident attribution",
		logging.String("title", externalTitle),
		logging.Float64("best", bestScore))
	return Attribution{Title: strings.TrimSpace(externalTitle), Confidence: bestScore, NeedsReview: true}
}

// stripExternalTitle removes the conference-year suffix and any trailing
// speaker segment so only the talk title takes part in scoring.
func stripExternalTitle(title string) string {
	title = yearSuffixRule.ReplaceAllString(title, "")
	title = speakerTailRule.ReplaceAllString(title, "")
	return NormalizeTitle(title)
}

// parseTitleSpeakers extracts title and speakers directly from a published
// name when fuzzy lookup came up short.
func parseTitleSpeakers(externalTitle string) (string, []string, bool) {
	trimmed := strings.TrimSpace(externalTitle)
	for _, rule := range []*regexp.Regexp{quotedTitleRule, legacyTitleRule} {
		parts := rule.FindStringSubmatch(trimmed)
		if parts == nil {
			continue
		}
		title := strings.TrimSpace(parts[1])
		speakers := splitSpeakers(parts[2])
		if title == "" || len(speakers) == 0 {
			continue
		}
		return title, speakers, true
	}
	return "", nil, false
}

func splitSpeakers(raw string) []string {
	var speakers []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(strings.Trim(strings.TrimSpace(part), `"`))
		if part != "" {
			speakers = append(speakers, part)
		}
	}
	return speakers
}
