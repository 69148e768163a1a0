package rename

import (
	"fmt"
	"regexp"
	"strings"

	"greenroom/internal/schedule"
	"greenroom/internal/textutil"
)

const (
	// PublishedSeparator is the em-dash separator in publication filenames.
	// It is a true em dash, not a hyphen: its presence is the marker that a
	// file has already been published, so it must be produced exactly.
	PublishedSeparator = " — "

	// ReviewPrefix flags files that matched no talk. The leading "!" sorts
	// before alphanumerics, so flagged files surface at the top of listings.
	ReviewPrefix = "![REVIEW_NEEDED]_"

	// UnknownSpeaker substitutes for an empty speaker list.
	UnknownSpeaker = "Unknown Speaker"
)

// NewName builds the publication filename for a matched talk:
//
//	{talk_title} — {speaker1} & {speaker2} (PyBay {year}).{ext}
//
// sanitized of characters illegal in common filesystem names.
func NewName(talk schedule.TalkRecord, year int, extension string) string {
	names := talk.SpeakerNames()
	joined := strings.Join(names, " & ")
	if joined == "" {
		joined = UnknownSpeaker
	}
	name := fmt.Sprintf("%s%s%s (PyBay %d).%s", talk.Title, PublishedSeparator, joined, year, extension)
	return textutil.SanitizeFileName(name)
}

// legacyYearSuffix matches a bare "(YYYY).ext" tail. Publication names carry
// "(PyBay YYYY)", so anything matching here predates the labeled format.
var legacyYearSuffix = regexp.MustCompile(`\((\d{4})\)(\.\w+)$`)

// RepairPublicationName converts a legacy "(YYYY)" tail to "(PyBay YYYY)".
// The boolean is false when the name needs no repair.
func RepairPublicationName(name string) (string, bool) {
	if !legacyYearSuffix.MatchString(name) {
		return "", false
	}
	return legacyYearSuffix.ReplaceAllString(name, "(PyBay $1)$2"), true
}
