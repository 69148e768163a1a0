package rename

import (
	"regexp"
	"strings"
)

// Tokens holds the structural fields extracted from a vendor filename assumed
// to loosely follow "Room - Time - Surname - Title.ext". Every field except
// Name and Ext may be empty when the filename does not carry it.
type Tokens struct {
	Name    string // original filename
	Stem    string // filename without extension
	Room    string
	Clock   string // raw time token, not yet normalized
	Surname string
	Ext     string // extension without the leading dot
}

var (
	// clockRule matches the first time-looking token anywhere in the stem:
	// "1000", "230", "6:30PM", "10:00am", "14:30".
	clockRule = regexp.MustCompile(`\b\d{1,2}:?\d{0,2}\s?(?i:am|pm)?\b`)

	// fieldSep is a hyphen flanked by whitespace on at least one side. A bare
	// hyphen is not a separator, so "Hatfield-Dodds" survives intact.
	fieldSep = regexp.MustCompile(`\s+-\s*|\s*-\s+`)

	// surnameLead consumes the separator between the time token and the
	// surname field.
	surnameLead = regexp.MustCompile(`^\s*-\s*`)

	// surnameEnd bounds the surname field on the right. Requiring whitespace
	// on both sides keeps mid-word hyphens out and tolerates double spaces.
	surnameEnd = regexp.MustCompile(`\s+-\s+`)
)

// Tokenize decomposes a filename into its schedule-matching tokens. Extraction
// rules are independent; one missing field never breaks the others.
func Tokenize(filename string) Tokens {
	tokens := Tokens{Name: filename, Stem: filename}
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		tokens.Stem = filename[:idx]
		tokens.Ext = filename[idx+1:]
	}
	tokens.Room = extractRoom(tokens.Stem)
	tokens.Clock = extractClock(tokens.Stem)
	tokens.Surname = extractSurname(tokens.Stem, tokens.Clock)
	return tokens
}

// extractRoom returns the text before the first field separator, or "" when
// the stem has none.
func extractRoom(stem string) string {
	loc := fieldSep.FindStringIndex(stem)
	if loc == nil || loc[0] == 0 {
		return ""
	}
	return strings.TrimSpace(stem[:loc[0]])
}

// extractClock returns the first time-looking token, or "" when none exists.
func extractClock(stem string) string {
	return strings.TrimSpace(clockRule.FindString(stem))
}

// extractSurname returns the text strictly between the clock token and the
// next field separator. Both bounds must be present; a filename like
// "Robertson - 1830 - Closing Remarks" has no surname field because nothing
// separates the trailing text from the title position.
func extractSurname(stem, clock string) string {
	if clock == "" {
		return ""
	}
	idx := strings.Index(stem, clock)
	if idx < 0 {
		return ""
	}
	rest := stem[idx+len(clock):]

	lead := surnameLead.FindStringIndex(rest)
	if lead == nil || lead[1] == 0 {
		return ""
	}
	rest = rest[lead[1]:]

	end := surnameEnd.FindStringIndex(rest)
	if end == nil {
		return ""
	}
	return strings.TrimSpace(rest[:end[0]])
}
