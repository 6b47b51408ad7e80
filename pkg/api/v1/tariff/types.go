package tariff

import "github.com/go-openapi/strfmt"

// TariffRate is one half-hour unit rate as served by the standard-unit-rates endpoint.
type TariffRate struct {
	ValidFrom   strfmt.DateTime  `json:"valid_from"`
	ValidTo     *strfmt.DateTime `json:"valid_to"`
	ValueIncVat float64          `json:"value_inc_vat"`
	ValueExcVat float64          `json:"value_exc_vat"`
}

type ConsumptionRecord struct {
	IntervalStart strfmt.DateTime `json:"interval_start"`
	IntervalEnd   strfmt.DateTime `json:"interval_end"`
	Consumption   float64         `json:"consumption"`
}

// Page is the paginated envelope returned by the API. Only Results is used.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

type RatesPage = Page[TariffRate]
type ConsumptionPage = Page[ConsumptionRecord]
