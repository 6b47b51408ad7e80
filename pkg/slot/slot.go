// Package slot maps wall-clock time onto the half-hour billing slots used by
// the tariff API.
package slot

import "time"

const (
	Length = 30 * time.Minute

	// APILayout is how the API serialises slot boundaries: UTC with a literal Z.
	APILayout = "2006-01-02T15:04:05Z"
)

// RoundDown returns the start of the half-hour slot containing t.
func RoundDown(t time.Time) time.Time {
	minute := 0
	if t.Minute() >= 30 {
		minute = 30
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
}

// RoundUp returns the end of the slot containing t. The second half of an hour
// ends at hh:59:59 rather than rolling into the next hour.
func RoundUp(t time.Time) time.Time {
	if t.Minute() >= 30 {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 59, 59, 0, t.Location())
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 30, 0, 0, t.Location())
}

// RunWindow is the time left until RoundUp(now) in whole seconds, never negative.
func RunWindow(now time.Time) time.Duration {
	d := RoundUp(now).Sub(now).Truncate(time.Second)
	if d < 0 {
		return 0
	}
	return d
}

// Next returns the start of the slot following the one containing t.
func Next(t time.Time) time.Time {
	return RoundDown(t).Add(Length)
}

func Format(t time.Time) string {
	return t.UTC().Format(APILayout)
}
