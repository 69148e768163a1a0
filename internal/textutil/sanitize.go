package textutil

import "strings"

// publicationNameReplacer strips characters that common filesystems refuse in
// filenames. Ampersands and other punctuation are kept so speaker lists like
// "Fabio Pliger & Chris Laffra" survive intact.
var publicationNameReplacer = strings.NewReplacer(
	"<", "",
	">", "",
	":", "",
	"\"", "",
	"/", "",
	"\\", "",
	"|", "",
	"?", "",
	"*", "",
)

// SanitizeFileName removes filesystem-unsafe characters from a filename.
// The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(publicationNameReplacer.Replace(name))
}

// FoldDashes rewrites em and en dashes to plain hyphens. Title comparison uses
// the folded form so punctuation variants of the same title still line up.
func FoldDashes(value string) string {
	value = strings.ReplaceAll(value, "—", "-")
	value = strings.ReplaceAll(value, "–", "-")
	return value
}
