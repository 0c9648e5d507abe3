package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/beesaferoot/gorm-bookings/pricing"
)

// ErrValidation wraps every field error returned by the Validate methods.
var ErrValidation = errors.New("validation failed")

// PriceScale is the number of decimal places of the stored money columns.
const PriceScale = 2

var alphaDash = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})

	// Decimals compare as floats so gte/lte work on money and percentages.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch d := field.Interface().(type) {
		case decimal.Decimal:
			return d.InexactFloat64()
		case decimal.NullDecimal:
			if d.Valid {
				return d.Decimal.InexactFloat64()
			}
		}
		return nil
	}, decimal.Decimal{}, decimal.NullDecimal{})

	mustRegister(v, "alphadash", func(fl validator.FieldLevel) bool {
		return alphaDash.MatchString(fl.Field().String())
	})
	mustRegister(v, "unit", func(fl validator.FieldLevel) bool {
		return pricing.Unit(fl.Field().String()).Validate() == nil
	})
	mustRegister(v, "weekday", func(fl validator.FieldLevel) bool {
		_, err := pricing.ParseWeekday(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "timeofday", func(fl validator.FieldLevel) bool {
		_, err := pricing.ParseTimeOfDay(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "operator", func(fl validator.FieldLevel) bool {
		_, err := pricing.ParseOperator(fl.Field().String())
		return err == nil
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}

// check runs the struct tag rules of s and returns one error per failed
// field, joined.
func check(s interface{}) []error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []error{fmt.Errorf("%w: %v", ErrValidation, err)}
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, invalid(fe.Field(), reason(fe)))
	}
	return errs
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "len":
		return "must have length " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "alphadash":
		return "must contain only letters, digits, dashes or underscores"
	case "alpha":
		return "must contain only letters"
	}
	if fe.Param() != "" {
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	}
	return "is not a valid " + fe.Tag()
}
