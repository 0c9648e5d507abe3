package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Weekday is the three letter lowercase day name stored with an override.
type Weekday string

const (
	Sunday    Weekday = "sun"
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
)

var weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf returns the weekday of t in t's own location.
func WeekdayOf(t time.Time) Weekday {
	return weekdays[t.Weekday()]
}

// ParseWeekday accepts "sun".."sat" in any letter case.
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	for _, w := range weekdays {
		if w == d {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// TimeOfDay is a wall clock offset from midnight.
type TimeOfDay time.Duration

// EndOfDay is the exclusive upper bound "24:00:00".
const EndOfDay = TimeOfDay(24 * time.Hour)

// ParseTimeOfDay parses "HH:MM:SS" or "HH:MM". "24:00" and "24:00:00"
// are accepted as EndOfDay so a window can run up to midnight.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "24:00" || s == "24:00:00" {
		return EndOfDay, nil
	}

	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return ClockOf(t), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
}

// MustTimeOfDay is ParseTimeOfDay for literals known to be valid.
func MustTimeOfDay(s string) TimeOfDay {
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return tod
}

// ClockOf returns the time-of-day component of t, ignoring the date.
func ClockOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	d := time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())
	return TimeOfDay(d)
}

func (t TimeOfDay) String() string {
	d := time.Duration(t)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%02d:%02d:%02d", h, m, d/time.Second)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// PriceOverride adjusts the base price by Percentage for every unit that
// falls on Weekday and, for sub-day units, inside [StartsAt, EndsAt).
type PriceOverride struct {
	Weekday    Weekday         `json:"weekday"`
	StartsAt   TimeOfDay       `json:"starts_at"`
	EndsAt     TimeOfDay       `json:"ends_at"`
	Percentage decimal.Decimal `json:"percentage"`
}

// NewPriceOverride builds an override from its stored representation and
// validates every field.
func NewPriceOverride(weekday, startsAt, endsAt string, percentage decimal.Decimal) (PriceOverride, error) {
	day, err := ParseWeekday(weekday)
	if err != nil {
		return PriceOverride{}, err
	}
	start, err := ParseTimeOfDay(startsAt)
	if err != nil {
		return PriceOverride{}, err
	}
	end, err := ParseTimeOfDay(endsAt)
	if err != nil {
		return PriceOverride{}, err
	}
	if err := ValidatePercentage(percentage); err != nil {
		return PriceOverride{}, err
	}

	return PriceOverride{
		Weekday:    day,
		StartsAt:   start,
		EndsAt:     end,
		Percentage: percentage,
	}, nil
}

// Matches reports whether the override applies to the unit starting at ts.
// Day units only compare the weekday.
func (o PriceOverride) Matches(ts time.Time, unit Unit) bool {
	if WeekdayOf(ts) != o.Weekday {
		return false
	}
	if unit == UnitDay {
		return true
	}

	clock := ClockOf(ts)
	return clock >= o.StartsAt && clock < o.EndsAt
}

// Resolve returns the first override in list order that matches ts.
func Resolve(ts time.Time, unit Unit, overrides []PriceOverride) (PriceOverride, bool) {
	i := resolveIndex(ts, unit, overrides)
	if i < 0 {
		return PriceOverride{}, false
	}
	return overrides[i], true
}

func resolveIndex(ts time.Time, unit Unit, overrides []PriceOverride) int {
	for i, o := range overrides {
		if o.Matches(ts, unit) {
			return i
		}
	}
	return -1
}

// ValidatePercentage checks the [-100, 100] bound shared by overrides and rates.
func ValidatePercentage(p decimal.Decimal) error {
	if p.LessThan(hundred.Neg()) || p.GreaterThan(hundred) {
		return fmt.Errorf("%w: %s", ErrPercentageOutOfRange, p.String())
	}
	return nil
}
