package pricing

import "errors"

var (
	// ErrUnsupportedUnit is returned for a billing unit outside minute, hour and day.
	ErrUnsupportedUnit = errors.New("unsupported billing unit")

	// ErrInvalidOperator is returned by ParseOperator for an unknown rate operator.
	// The engine itself never returns it; see Operator.
	ErrInvalidOperator = errors.New("invalid rate operator")

	ErrInvalidWeekday       = errors.New("invalid weekday")
	ErrInvalidTimeOfDay     = errors.New("invalid time of day")
	ErrPercentageOutOfRange = errors.New("percentage must be between -100 and 100")
	ErrNegativeAmount       = errors.New("rate amount must not be negative")
)
