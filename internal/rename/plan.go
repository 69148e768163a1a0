package rename

import (
	"greenroom/internal/schedule"
)

// Match records one talk-to-file pairing in a plan.
type Match struct {
	TalkTitle string
	OldName   string
	NewName   string
}

// Plan is the full outcome of one matching pass: the rename mapping to apply
// plus the two diagnostic lists a human reviews afterwards. Nothing in a plan
// has touched the filesystem yet.
type Plan struct {
	// Renames maps original filename to generated filename. Keys are unique
	// and each file is renamed at most once.
	Renames map[string]string
	// Matches lists successful pairings in talk order.
	Matches []Match
	// TalksWithoutVideo lists talk titles that matched no file.
	TalksWithoutVideo []string
	// UnmatchedFiles lists files that matched no talk. They are flagged for
	// review in Renames, never silently dropped.
	UnmatchedFiles []string
}

// BuildPlan reconciles the scheduled program against the candidate filenames
// and produces the rename plan. Candidates already processed (review-flagged
// or em-dash published) are excluded entirely. The pass is pure: no I/O, no
// retries, no partial application.
//
// Ordering note: talks are scanned in schedule order and the first acceptable
// candidate wins, so two talks sharing a room and time slot resolve in input
// order. A nameless candidate in that slot goes to whichever talk comes first.
func BuildPlan(talks []schedule.TalkRecord, files []string, year int) (*Plan, error) {
	if err := schedule.Validate(talks); err != nil {
		return nil, err
	}

	eligible := make([]string, 0, len(files))
	for _, name := range files {
		if !AlreadyProcessed(name) {
			eligible = append(eligible, name)
		}
	}

	plan := &Plan{Renames: make(map[string]string, len(eligible))}
	claimed := make(map[string]struct{}, len(eligible))

	for _, talk := range talks {
		remaining := make([]string, 0, len(eligible))
		for _, name := range eligible {
			if _, ok := claimed[name]; !ok {
				remaining = append(remaining, name)
			}
		}

		name, ok := FindVideo(talk, remaining)
		if !ok {
			plan.TalksWithoutVideo = append(plan.TalksWithoutVideo, talk.Title)
			continue
		}

		tokens := Tokenize(name)
		newName := NewName(talk, year, tokens.Ext)
		plan.Renames[name] = newName
		plan.Matches = append(plan.Matches, Match{TalkTitle: talk.Title, OldName: name, NewName: newName})
		claimed[name] = struct{}{}
	}

	for _, name := range eligible {
		if _, ok := claimed[name]; ok {
			continue
		}
		plan.UnmatchedFiles = append(plan.UnmatchedFiles, name)
		plan.Renames[name] = ReviewPrefix + name
	}

	return plan, nil
}
