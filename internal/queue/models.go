package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a queue item.
type Status string

const (
	StatusPending     Status = "pending"
	StatusDownloading Status = "downloading"
	StatusDownloaded  Status = "downloaded"
	StatusRenamed     Status = "renamed"
	StatusReview      Status = "review"
	StatusFailed      Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusDownloading,
	StatusDownloaded,
	StatusRenamed,
	StatusReview,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Item represents one video file tracked through the pipeline.
type Item struct {
	ID           int64
	JobID        string
	Filename     string
	NewName      string
	Size         int64
	Status       Status
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether the status is an end state for the pipeline.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRenamed, StatusFailed:
		return true
	default:
		return false
	}
}

// NeedsAttention reports whether the item requires operator action.
func (i Item) NeedsAttention() bool {
	return i.Status == StatusReview || i.Status == StatusFailed
}

// Summary describes aggregated queue counts per lifecycle state.
type Summary struct {
	Total      int
	Pending    int
	Processing int
	Review     int
	Failed     int
	Renamed    int
}
