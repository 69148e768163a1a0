package schedule

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"greenroom/internal/services"
)

// NoSurname is the sentinel lastname value meaning "no real surname provided".
// The schedule scraper emits it for speakers registered under a single name.
const NoSurname = "."

// Speaker is one presenter attached to a talk. Either name part may be empty.
type Speaker struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// DisplayName joins the non-empty name parts, skipping the NoSurname sentinel.
func (s Speaker) DisplayName() string {
	parts := make([]string, 0, 2)
	if s.FirstName != "" {
		parts = append(parts, s.FirstName)
	}
	if s.LastName != "" && s.LastName != NoSurname {
		parts = append(parts, s.LastName)
	}
	return strings.Join(parts, " ")
}

// TalkRecord is one scheduled session from the conference program. Records are
// produced by the schedule scraper and read-only to the pipeline.
type TalkRecord struct {
	Room        string    `json:"room"`
	StartTime   string    `json:"start_time"`
	Title       string    `json:"talk_title"`
	Description string    `json:"description"`
	Speakers    []Speaker `json:"speakers"`
	ID          string    `json:"id"`
}

// SpeakerNames returns the display name of every speaker that has one.
func (t TalkRecord) SpeakerNames() []string {
	names := make([]string, 0, len(t.Speakers))
	for _, s := range t.Speakers {
		if name := s.DisplayName(); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// HasSpeakerNames reports whether any speaker carries usable name data.
func (t TalkRecord) HasSpeakerNames() bool {
	for _, s := range t.Speakers {
		if s.FirstName != "" || s.LastName != "" {
			return true
		}
	}
	return false
}

var roomCaser = cases.Title(language.English)

// DisplayRoom renders a room label for human-facing output. Vendor filenames
// and the schedule disagree on casing often enough that summaries normalize it.
func DisplayRoom(room string) string {
	return roomCaser.String(strings.ToLower(strings.TrimSpace(room)))
}

// Load reads a talk metadata JSON catalog and validates the caller contract.
func Load(path string) ([]TalkRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read talk metadata: %w", err)
	}

	var talks []TalkRecord
	if err := json.Unmarshal(data, &talks); err != nil {
		return nil, fmt.Errorf("parse talk metadata: %w", err)
	}

	if err := Validate(talks); err != nil {
		return nil, err
	}
	return talks, nil
}

// Validate checks that every record satisfies the matching contract. A record
// without a talk title means the scheduling collaborator produced malformed
// data; the batch stops rather than silently skipping the record.
func Validate(talks []TalkRecord) error {
	for i, talk := range talks {
		if strings.TrimSpace(talk.Title) == "" {
			return services.Wrap(
				services.ErrValidation,
				"schedule",
				"validate",
				fmt.Sprintf("record %d (room %q, start %q) is missing talk_title", i, talk.Room, talk.StartTime),
				nil,
			)
		}
	}
	return nil
}
