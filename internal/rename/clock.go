package rename

import (
	"fmt"
	"strings"
)

// NormalizeClock canonicalizes a free-form time expression into a 4-digit
// 24-hour key ("2:30 pm" -> "1430", "10:00" -> "1000", "1430" -> "1430").
// The key is a comparison value only; display formatting is a separate
// concern. Inputs with no digits return "" and cannot be matched on time.
func NormalizeClock(text string) string {
	digits := keepDigits(text)
	if digits == "" {
		return ""
	}

	lower := strings.ToLower(text)
	meridiem := ""
	switch {
	case strings.Contains(lower, "am"):
		meridiem = "am"
	case strings.Contains(lower, "pm"):
		meridiem = "pm"
	}

	var hour, minute int
	switch len(digits) {
	case 4:
		// Pre-formed 24-hour keys and "10:00"-style inputs alike.
		hour = atoi(digits[:2])
		minute = atoi(digits[2:4])
	case 3:
		// "2:30" and "230" both mean hour 2, minute 30. The colon carries no
		// extra information at this width; one rule covers every 3-digit form.
		hour = atoi(digits[:1])
		minute = atoi(digits[1:3])
	case 2, 1:
		hour = atoi(digits)
	default:
		hour = atoi(digits[:2])
	}

	switch {
	case meridiem == "pm" && hour != 12:
		hour += 12
	case meridiem == "am" && hour == 12:
		hour = 0
	}

	return fmt.Sprintf("%02d%02d", hour, minute)
}

func keepDigits(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// atoi parses a digit-only string; callers guarantee the input is digits.
func atoi(digits string) int {
	n := 0
	for _, r := range digits {
		n = n*10 + int(r-'0')
	}
	return n
}
