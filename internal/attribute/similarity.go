package attribute

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// PartialRatio scores how well the shorter string matches the best-aligned
// window of the longer one, as a percentage. Partial scoring matters because
// externally hosted titles are frequently truncated to a fixed character
// budget; a full-string ratio would punish the missing tail.
func PartialRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		if len(rb) == 0 {
			return 100
		}
		return 0
	}

	metric := metrics.NewLevenshtein()
	shorter := string(ra)
	if len(ra) == len(rb) {
		return strutil.Similarity(shorter, string(rb), metric) * 100
	}

	best := 0.0
	for i := 0; i+len(ra) <= len(rb); i++ {
		window := string(rb[i : i+len(ra)])
		if score := strutil.Similarity(shorter, window, metric); score > best {
			best = score
			if best == 1 {
				break
			}
		}
	}
	return best * 100
}
