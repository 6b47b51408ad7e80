package app

import (
	"time"

	"github.com/nergy-se/agilerun/pkg/api/v1/tariff"
	"github.com/nergy-se/agilerun/pkg/slot"
)

// nextDelay returns how long to sleep until settle after the next half-hour
// boundary. Boundaries are UTC ones whatever the location of now.
func nextDelay(now time.Time, settle time.Duration) time.Duration {
	now = now.UTC()
	return slot.Next(now).Add(settle).Sub(now)
}

// yesterday picks yesterday's total from a page ordered most recent first.
func yesterday(records []tariff.ConsumptionRecord) (tariff.ConsumptionRecord, bool) {
	switch len(records) {
	case 0:
		return tariff.ConsumptionRecord{}, false
	case 1:
		return records[0], true
	}
	return records[1], true
}
