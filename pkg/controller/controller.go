package controller

import (
	"time"

	"github.com/nergy-se/agilerun/pkg/state"
)

// Controller switches whatever consumes cheap electricity on or off.
type Controller interface {
	// AllowCompute is called once per cycle. runtime is how long the current
	// decision is valid for.
	AllowCompute(allow bool, runtime time.Duration) error
}

// Publisher republishes the outcome of a cycle, e.g. as metrics.
type Publisher interface {
	Publish(s state.State) error
}

// Allow reports whether price is cheap enough. The threshold is inclusive.
func Allow(price, threshold float64) bool {
	return price <= threshold
}

func RunMode(allow bool) state.RunMode {
	if allow {
		return state.RunModeAuto
	}
	return state.RunModeNever
}
