package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Operator decides how a rate rule compares its Amount with the total
// number of booked units.
type Operator string

const (
	OperatorCap         Operator = "^"
	OperatorGreaterThan Operator = ">"
	OperatorLessThan    Operator = "<"
	OperatorEqualTo     Operator = "="
)

// ParseOperator accepts only the four known operators. Use it when
// storing a rule; the engine itself falls back to OperatorEqualTo.
func ParseOperator(s string) (Operator, error) {
	switch op := Operator(s); op {
	case OperatorCap, OperatorGreaterThan, OperatorLessThan, OperatorEqualTo:
		return op, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOperator, s)
	}
}

// RateRule adds Percentage of the base price per unit when the total unit
// count satisfies Operator against Amount.
type RateRule struct {
	Percentage decimal.Decimal `json:"percentage"`
	Operator   Operator        `json:"operator"`
	Amount     int             `json:"amount"`
}

// NewRateRule builds a validated rule.
func NewRateRule(percentage decimal.Decimal, operator string, amount int) (RateRule, error) {
	op, err := ParseOperator(operator)
	if err != nil {
		return RateRule{}, err
	}
	if err := ValidatePercentage(percentage); err != nil {
		return RateRule{}, err
	}
	if amount < 0 {
		return RateRule{}, fmt.Errorf("%w: %d", ErrNegativeAmount, amount)
	}

	return RateRule{Percentage: percentage, Operator: op, Amount: amount}, nil
}

// billedUnits returns how many units the rule charges for, and whether the
// rule applies at all.
func (r RateRule) billedUnits(totalUnits int) (int, bool) {
	switch r.Operator {
	case OperatorCap:
		return min(totalUnits, r.Amount), true
	case OperatorGreaterThan:
		return totalUnits, totalUnits > r.Amount
	case OperatorLessThan:
		return totalUnits, totalUnits < r.Amount
	default:
		// "=" and any unrecognised operator compare for equality.
		return totalUnits, totalUnits == r.Amount
	}
}

// Contribution is the amount the rule adds for totalUnits at basePrice.
func (r RateRule) Contribution(totalUnits int, basePrice decimal.Decimal) decimal.Decimal {
	units, ok := r.billedUnits(totalUnits)
	if !ok {
		return decimal.Zero
	}
	portion := r.Percentage.Mul(basePrice).Div(hundred)
	return portion.Mul(decimal.NewFromInt(int64(units)))
}

// ApplyRates sums the contributions of all rules. Rules are independent;
// every rule is evaluated. The returned slice lists the rules whose
// condition held, in input order.
func ApplyRates(totalUnits int, basePrice decimal.Decimal, rates []RateRule) (decimal.Decimal, []RateRule) {
	additional := decimal.Zero
	applied := make([]RateRule, 0, len(rates))

	for _, r := range rates {
		if _, ok := r.billedUnits(totalUnits); !ok {
			continue
		}
		additional = additional.Add(r.Contribution(totalUnits, basePrice))
		applied = append(applied, r)
	}
	return additional, applied
}
