package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	s := State{
		Slot:        time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		PriceIncVat: Pointer(12.5),
		PriceExcVat: Pointer(10.0),
		PriceFound:  Pointer(true),
		RunMode:     Pointer(RunModeAuto),
	}

	assert.Equal(t, map[string]interface{}{
		"slot":        "2024-01-01T12:00:00Z",
		"priceIncVat": 12.5,
		"priceExcVat": 10.0,
		"priceFound":  int64(1),
		"runMode":     "auto",
	}, s.Map())
}

func TestMapEmpty(t *testing.T) {
	assert.Empty(t, State{}.Map())
}
