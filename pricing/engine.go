// Package pricing computes booking prices from a resource's base price,
// weekday/time-window overrides and threshold rate rules.
//
// Every function in this package is pure: inputs are passed by value, no
// state is shared between calls, and identical inputs always produce an
// identical PriceEquation. Callers may invoke it concurrently.
package pricing

import (
	"iter"
	"time"

	"github.com/shopspring/decimal"
)

// PricingConfig is the pricing owned by a bookable resource.
type PricingConfig struct {
	BasePrice decimal.Decimal `json:"base_price"`
	Unit      Unit            `json:"unit"`
	Currency  string          `json:"currency"`
}

// Request is one price determination. A nil EndsAt prices a single day
// from StartsAt.
type Request struct {
	Pricing   PricingConfig
	Overrides []PriceOverride
	Rates     []RateRule
	StartsAt  time.Time
	EndsAt    *time.Time
}

// Quote is the result of Calculate.
type Quote struct {
	TotalPrice decimal.Decimal `json:"total_price"`
	Currency   string          `json:"currency"`
	Equation   PriceEquation   `json:"equation"`
}

// Accumulate walks the units, pricing each one at the base price adjusted
// by the first matching override. It returns the unit count, the summed
// price and the overrides that matched at least once, in list order.
func Accumulate(units iter.Seq[time.Time], cfg PricingConfig, overrides []PriceOverride) (int, decimal.Decimal, []PriceOverride) {
	total := decimal.Zero
	count := 0
	used := make([]bool, len(overrides))

	for ts := range units {
		count++

		i := resolveIndex(ts, cfg.Unit, overrides)
		if i < 0 {
			total = total.Add(cfg.BasePrice)
			continue
		}

		used[i] = true
		delta := cfg.BasePrice.Mul(overrides[i].Percentage).Div(hundred)
		total = total.Add(cfg.BasePrice.Add(delta))
	}

	matched := make([]PriceOverride, 0, len(overrides))
	for i, ok := range used {
		if ok {
			matched = append(matched, overrides[i])
		}
	}
	return count, total, matched
}

// Calculate prices a booking request. An inverted or empty range yields a
// zero-unit, zero-price quote rather than an error. The only failure is
// an unsupported billing unit.
func Calculate(req Request) (Quote, error) {
	cfg := req.Pricing

	units, err := Iterate(req.StartsAt, req.EndsAt, cfg.Unit)
	if err != nil {
		return Quote{}, err
	}

	totalUnits, subtotal, overridesUsed := Accumulate(units, cfg, req.Overrides)
	adjustment, ratesApplied := ApplyRates(totalUnits, cfg.BasePrice, req.Rates)

	eq := BuildEquation(cfg, totalUnits, subtotal, adjustment, overridesUsed, ratesApplied)
	return Quote{
		TotalPrice: eq.TotalPrice,
		Currency:   cfg.Currency,
		Equation:   eq,
	}, nil
}
