package card

import (
	"fmt"
	"math"
)

// FormatTime renders seconds as m:ss. Zero, negative and non-finite
// values render as 0:00.
func FormatTime(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "0:00"
	}
	total := int64(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Progress returns position/duration clamped to [0,1]. A missing or
// non-positive duration counts as one second.
func Progress(position, duration float64) float64 {
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		duration = 1
	}
	if math.IsNaN(position) || position <= 0 {
		return 0
	}
	return min(position/duration, 1)
}
