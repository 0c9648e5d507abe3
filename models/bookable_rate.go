package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/beesaferoot/gorm-bookings/pricing"
)

// BookableRate is a stored threshold rate rule.
type BookableRate struct {
	gorm.Model
	BookableID uint            `json:"bookable_id" gorm:"not null;index" validate:"required"`
	Percentage decimal.Decimal `json:"percentage" gorm:"type:decimal(5,2);not null" validate:"gte=-100,lte=100"`
	Operator   string          `json:"operator" gorm:"size:1;not null" validate:"operator"`
	Amount     int             `json:"amount" gorm:"not null" validate:"gte=0,lte=10000000"`
}

func (BookableRate) TableName() string {
	return "bookable_rates"
}

// Rule converts the record for the engine. The operator is passed through
// as stored; an unknown value prices as "=".
func (r BookableRate) Rule() pricing.RateRule {
	return pricing.RateRule{
		Percentage: r.Percentage,
		Operator:   pricing.Operator(r.Operator),
		Amount:     r.Amount,
	}
}

func (r *BookableRate) Validate() error {
	return errors.Join(check(r)...)
}

func (r *BookableRate) BeforeSave(tx *gorm.DB) error {
	return r.Validate()
}
