package pricing

import "github.com/shopspring/decimal"

// PriceEquation records every input and intermediate value that produced
// a booking price. TotalPrice always equals Subtotal plus Adjustment.
type PriceEquation struct {
	BasePrice     decimal.Decimal `json:"base_price"`
	Unit          Unit            `json:"unit"`
	Currency      string          `json:"currency"`
	TotalUnits    int             `json:"total_units"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Adjustment    decimal.Decimal `json:"adjustment"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	OverridesUsed []PriceOverride `json:"overrides_used"`
	RatesApplied  []RateRule      `json:"rates_applied"`
}

// BuildEquation packages the results of one calculation.
func BuildEquation(cfg PricingConfig, totalUnits int, subtotal, adjustment decimal.Decimal, overrides []PriceOverride, rates []RateRule) PriceEquation {
	if overrides == nil {
		overrides = []PriceOverride{}
	}
	if rates == nil {
		rates = []RateRule{}
	}

	return PriceEquation{
		BasePrice:     cfg.BasePrice,
		Unit:          cfg.Unit,
		Currency:      cfg.Currency,
		TotalUnits:    totalUnits,
		Subtotal:      subtotal,
		Adjustment:    adjustment,
		TotalPrice:    subtotal.Add(adjustment),
		OverridesUsed: overrides,
		RatesApplied:  rates,
	}
}
