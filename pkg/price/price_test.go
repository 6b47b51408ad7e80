package price

import (
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/nergy-se/agilerun/pkg/api/v1/tariff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(ts string, incVat, excVat float64) tariff.TariffRate {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return tariff.TariffRate{
		ValidFrom:   strfmt.DateTime(t),
		ValueIncVat: incVat,
		ValueExcVat: excVat,
	}
}

func TestLocate(t *testing.T) {
	rates := []tariff.TariffRate{
		rate("2024-01-01T13:00:00Z", 30.0, 28.57),
		rate("2024-01-01T12:30:00Z", 20.0, 19.05),
		rate("2024-01-01T12:00:00Z", 12.5, 10.0),
		rate("2024-01-01T11:30:00Z", 9.0, 8.57),
	}

	var tests = []struct {
		name   string
		slot   time.Time
		found  bool
		incVat float64
		excVat float64
	}{
		{
			name:   "match between neighbours",
			slot:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
			found:  true,
			incVat: 12.5,
			excVat: 10.0,
		},
		{
			name:   "first element",
			slot:   time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC),
			found:  true,
			incVat: 30.0,
			excVat: 28.57,
		},
		{
			name:   "same instant in another zone",
			slot:   time.Date(2024, 1, 1, 13, 30, 0, 0, time.FixedZone("CET", 3600)),
			found:  true,
			incVat: 20.0,
			excVat: 19.05,
		},
		{
			name:   "inside a slot is not a match",
			slot:   time.Date(2024, 1, 1, 12, 15, 0, 0, time.UTC),
			incVat: Sentinel,
			excVat: Sentinel,
		},
		{
			name:   "outside the window",
			slot:   time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
			incVat: Sentinel,
			excVat: Sentinel,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cur := Locate(rates, tt.slot)
			assert.Equal(t, tt.found, cur.Found())
			assert.Equal(t, tt.incVat, cur.IncVat)
			assert.Equal(t, tt.excVat, cur.ExcVat)
			assert.Equal(t, tt.slot, cur.Slot)
		})
	}
}

func TestLocateFirstDuplicateWins(t *testing.T) {
	rates := []tariff.TariffRate{
		rate("2024-01-01T12:00:00Z", 12.5, 10.0),
		rate("2024-01-01T12:00:00Z", 99.0, 90.0),
	}
	cur := Locate(rates, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	require.True(t, cur.Found())
	assert.Equal(t, 12.5, cur.Rate.ValueIncVat)
}

func TestLocateEmpty(t *testing.T) {
	cur := Locate(nil, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	assert.False(t, cur.Found())
	assert.Equal(t, 101.00, cur.IncVat)
	assert.Nil(t, cur.Rate)
}
