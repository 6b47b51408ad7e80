package octopus

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/nergy-se/agilerun/pkg/api/v1/tariff"
	"github.com/sirupsen/logrus"
)

const (
	cacheSize = 8

	ratesKey       = "rates"
	consumptionKey = "consumption"
)

// Cached memoizes the last successful result of each fetch for its TTL.
// Failed fetches are never stored.
type Cached struct {
	source      Source
	rates       *expirable.LRU[string, []tariff.TariffRate]
	consumption *expirable.LRU[string, []tariff.ConsumptionRecord]
}

func NewCached(source Source, ratesTTL, consumptionTTL time.Duration) *Cached {
	return &Cached{
		source:      source,
		rates:       expirable.NewLRU[string, []tariff.TariffRate](cacheSize, nil, ratesTTL),
		consumption: expirable.NewLRU[string, []tariff.ConsumptionRecord](cacheSize, nil, consumptionTTL),
	}
}

func (c *Cached) FetchRates() ([]tariff.TariffRate, error) {
	if v, ok := c.rates.Get(ratesKey); ok {
		logrus.Debug("rates served from cache")
		return v, nil
	}
	v, err := c.source.FetchRates()
	if err != nil {
		return nil, err
	}
	c.rates.Add(ratesKey, v)
	return v, nil
}

func (c *Cached) FetchConsumption() ([]tariff.ConsumptionRecord, error) {
	if v, ok := c.consumption.Get(consumptionKey); ok {
		logrus.Debug("consumption served from cache")
		return v, nil
	}
	v, err := c.source.FetchConsumption()
	if err != nil {
		return nil, err
	}
	c.consumption.Add(consumptionKey, v)
	return v, nil
}
