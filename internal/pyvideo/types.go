package pyvideo

import (
	"regexp"
	"strings"
	"time"
)

var slugRule = regexp.MustCompile(`\W+`)

// Slug converts a title to a URL-friendly file stem: lowercase, non-word
// runs collapsed to hyphens, capped at ten segments so filenames stay
// readable.
func Slug(title string) string {
	slug := strings.Trim(slugRule.ReplaceAllString(strings.ToLower(title), "-"), "-")
	parts := strings.Split(slug, "-")
	if len(parts) > 10 {
		parts = parts[:10]
	}
	return strings.Join(parts, "-")
}

// Conference describes the event a metadata tree is generated for.
type Conference struct {
	Title       string
	PlaylistURL string
	ScheduleURL string
	Start       time.Time
	End         time.Time

	CopyrightText string

	// DropFirstLines and DropLastLines trim boilerplate the uploader
	// prepends or appends to every video description.
	DropFirstLines int
	DropLastLines  int
}

// Slug returns the conference directory name, e.g. "pybay-2025".
func (c Conference) Slug() string {
	return Slug(c.Title)
}

// VideoLink is one hosted copy of a talk recording.
type VideoLink struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// RelatedURL is a labeled link attached to a talk.
type RelatedURL struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Talk is the per-video metadata document in the indexing site's JSON
// schema. Field names and shapes follow that schema exactly.
type Talk struct {
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Speakers      []string     `json:"speakers"`
	Tags          []string     `json:"tags"`
	Language      string       `json:"language"`
	Recorded      string       `json:"recorded"`
	Duration      int          `json:"duration"`
	CopyrightText string       `json:"copyright_text"`
	RelatedURLs   []RelatedURL `json:"related_urls"`
	Videos        []VideoLink  `json:"videos"`
	ThumbnailURL  string       `json:"thumbnail_url"`
}

// Slug returns the talk's metadata file stem.
func (t Talk) Slug() string {
	return Slug(t.Title)
}

// VideoMetadata is the subset of a yt-dlp info.json document the
// converter reads. Playlist entries carry a different _type and are
// skipped.
type VideoMetadata struct {
	Type        string `json:"_type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	UploadDate  string `json:"upload_date"`
	Duration    int    `json:"duration"`
	WebpageURL  string `json:"webpage_url"`
	Thumbnail   string `json:"thumbnail"`
}
