package rename

import (
	"strings"

	"greenroom/internal/schedule"
)

// AlreadyProcessed reports whether a filename must never re-enter matching:
// review-flagged names (leading "!"), metadata files (leading "_"), and names
// already in publication form (containing the em-dash separator).
func AlreadyProcessed(name string) bool {
	return strings.HasPrefix(name, "!") ||
		strings.HasPrefix(name, "_") ||
		strings.Contains(name, PublishedSeparator)
}

// FindVideo scans candidates in order and returns the first filename matching
// the talk on room, normalized time, and speaker name. Greedy first-match is
// deliberate: the input is small and ambiguous collisions are rare enough to
// leave for human review rather than pay for optimal assignment.
//
// A missing outcome is expected input, not an error: the boolean is false when
// no candidate passes.
func FindVideo(talk schedule.TalkRecord, candidates []string) (string, bool) {
	talkRoom := strings.ToLower(strings.TrimSpace(talk.Room))
	talkClock := NormalizeClock(talk.StartTime)

	for _, name := range candidates {
		if AlreadyProcessed(name) {
			continue
		}
		tokens := Tokenize(name)

		// Room is optional on the candidate side: absent means "no objection".
		if tokens.Room != "" && strings.ToLower(tokens.Room) != talkRoom {
			continue
		}

		// Time is mandatory: a candidate without an extractable time cannot be
		// matched safely.
		if tokens.Clock == "" {
			continue
		}
		if NormalizeClock(tokens.Clock) != talkClock {
			continue
		}

		if speakerMatches(talk, tokens.Surname) {
			return name, true
		}
	}
	return "", false
}

// speakerMatches verifies the surname token against the talk's speakers. The
// check disambiguates same room+time collisions; when either side carries no
// name data, room+time is treated as sufficient. That leniency is deliberate:
// most legacy filenames lack a clean name token.
func speakerMatches(talk schedule.TalkRecord, surnameToken string) bool {
	token := strings.ToLower(strings.TrimSpace(surnameToken))
	if token == "" {
		return true
	}
	if !talk.HasSpeakerNames() {
		return true
	}

	for _, sp := range talk.Speakers {
		first := strings.ToLower(sp.FirstName)
		last := strings.ToLower(sp.LastName)

		// Containment in both directions handles partial and multi-word
		// surnames ("van Rossum" vs "Rossum").
		if last != "" && last != schedule.NoSurname {
			if strings.Contains(token, last) || strings.Contains(last, token) {
				return true
			}
		}
		// Vendors sometimes put a first name in the surname position.
		if first != "" {
			if strings.Contains(token, first) || strings.Contains(first, token) {
				return true
			}
		}
	}
	return false
}
