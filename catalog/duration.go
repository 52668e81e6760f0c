package catalog

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"vodsync/storage"
)

var compactDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseCompactDuration decodes the API's compact ISO-8601 duration into
// seconds. "P0D", the empty string and durations decoding to zero seconds are
// the source's placeholder for premieres and live events and yield
// storage.DurationUnusable. A string that does not match the compact form at
// all decodes to 0.
func ParseCompactDuration(s string) int {
	if s == "" || s == "P0D" {
		return storage.DurationUnusable
	}
	m := compactDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	total := 3600*atoi(m[1]) + 60*atoi(m[2]) + atoi(m[3])
	if total == 0 {
		return storage.DurationUnusable
	}
	return total
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}

// FormatClock renders a duration in seconds as "H:MM:SS" with unpadded hours,
// rounding to the nearest whole second.
func FormatClock(seconds float64) string {
	total := int(math.Round(seconds))
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
}

// FormatDuration renders an item duration for the ledger: seconds as a
// decimal string, or "N/A" for the unusable sentinel.
func FormatDuration(seconds int) string {
	if seconds == storage.DurationUnusable {
		return "N/A"
	}
	return strconv.Itoa(seconds)
}
