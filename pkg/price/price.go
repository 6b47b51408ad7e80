package price

import (
	"time"

	"github.com/nergy-se/agilerun/pkg/api/v1/tariff"
	"github.com/nergy-se/agilerun/pkg/slot"
	"github.com/sirupsen/logrus"
)

// Sentinel is reported when no rate covers the slot. It is higher than any
// realistic unit rate so threshold logic falls back to not running.
const Sentinel = 101.00

// Current is the price for one half-hour slot.
type Current struct {
	Slot   time.Time
	Rate   *tariff.TariffRate
	IncVat float64
	ExcVat float64
}

func (c Current) Found() bool {
	return c.Rate != nil
}

// Locate returns the first rate in list order whose valid_from is the same
// instant as slotStart.
func Locate(rates []tariff.TariffRate, slotStart time.Time) Current {
	for i := range rates {
		r := rates[i]
		if time.Time(r.ValidFrom).Equal(slotStart) {
			logrus.Debugf("Located: %s at price %.2f", slot.Format(time.Time(r.ValidFrom)), r.ValueIncVat)
			return Current{
				Slot:   slotStart,
				Rate:   &r,
				IncVat: r.ValueIncVat,
				ExcVat: r.ValueExcVat,
			}
		}
	}

	logrus.Warnf("no rate found for slot %s among %d rates, using %.2f", slot.Format(slotStart), len(rates), Sentinel)
	return Current{
		Slot:   slotStart,
		IncVat: Sentinel,
		ExcVat: Sentinel,
	}
}
