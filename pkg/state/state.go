package state

import (
	"time"

	"github.com/nergy-se/agilerun/pkg/slot"
)

const (
	RunModeAuto  RunMode = "auto"
	RunModeNever RunMode = "never"
)

type RunMode string

// State is what one poll cycle observed and decided.
type State struct {
	Slot                 time.Time `json:"slot"`
	PriceIncVat          *float64  `json:"priceIncVat,omitempty"`
	PriceExcVat          *float64  `json:"priceExcVat,omitempty"`
	PriceFound           *bool     `json:"priceFound,omitempty"`
	ConsumptionYesterday *float64  `json:"consumptionYesterday,omitempty"`
	RunMode              *RunMode  `json:"runMode,omitempty"`
}

func (s State) Map() map[string]interface{} {
	m := make(map[string]interface{})
	if !s.Slot.IsZero() {
		m["slot"] = slot.Format(s.Slot)
	}
	if s.PriceIncVat != nil {
		m["priceIncVat"] = *s.PriceIncVat
	}
	if s.PriceExcVat != nil {
		m["priceExcVat"] = *s.PriceExcVat
	}
	if s.PriceFound != nil {
		m["priceFound"] = boolToInt(*s.PriceFound)
	}
	if s.ConsumptionYesterday != nil {
		m["consumptionYesterday"] = *s.ConsumptionYesterday
	}
	if s.RunMode != nil {
		m["runMode"] = string(*s.RunMode)
	}
	return m
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func Pointer[K any](val K) *K {
	return &val
}
