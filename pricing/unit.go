package pricing

import (
	"fmt"
	"iter"
	"time"
)

// Unit is the billing granularity of a bookable resource.
type Unit string

const (
	UnitMinute Unit = "minute"
	UnitHour   Unit = "hour"
	UnitDay    Unit = "day"
)

// steps maps every supported unit to the function that advances a
// timestamp by exactly one unit. Days are calendar days, so a day step
// across a DST change is 23 or 25 hours long.
var steps = map[Unit]func(time.Time) time.Time{
	UnitMinute: func(t time.Time) time.Time { return t.Add(time.Minute) },
	UnitHour:   func(t time.Time) time.Time { return t.Add(time.Hour) },
	UnitDay:    func(t time.Time) time.Time { return t.AddDate(0, 0, 1) },
}

// ParseUnit converts a stored unit name into a Unit.
func ParseUnit(s string) (Unit, error) {
	u := Unit(s)
	if err := u.Validate(); err != nil {
		return "", err
	}
	return u, nil
}

// Validate reports ErrUnsupportedUnit for anything outside the enumeration.
func (u Unit) Validate() error {
	if _, ok := steps[u]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedUnit, string(u))
	}
	return nil
}

func (u Unit) String() string {
	return string(u)
}

// Iterate returns the unit boundaries of [startsAt, endsAt), one per unit.
// A nil endsAt means one day after startsAt. Empty and inverted ranges
// produce an empty sequence. The sequence can be ranged over any number
// of times.
func Iterate(startsAt time.Time, endsAt *time.Time, unit Unit) (iter.Seq[time.Time], error) {
	step, ok := steps[unit]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedUnit, string(unit))
	}

	end := startsAt.AddDate(0, 0, 1)
	if endsAt != nil {
		end = *endsAt
	}

	return func(yield func(time.Time) bool) {
		for t := startsAt; t.Before(end); t = step(t) {
			if !yield(t) {
				return
			}
		}
	}, nil
}

// CountUnits returns the number of billing units in [startsAt, endsAt).
func CountUnits(startsAt time.Time, endsAt *time.Time, unit Unit) (int, error) {
	units, err := Iterate(startsAt, endsAt, unit)
	if err != nil {
		return 0, err
	}

	n := 0
	for range units {
		n++
	}
	return n, nil
}
