package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/beesaferoot/gorm-bookings/pricing"
)

// BookablePrice is a stored weekday/time-window price override.
type BookablePrice struct {
	gorm.Model
	BookableID uint            `json:"bookable_id" gorm:"not null;index" validate:"required"`
	Weekday    string          `json:"weekday" gorm:"size:3;not null" validate:"weekday"`
	StartsAt   string          `json:"starts_at" gorm:"size:8;not null" validate:"timeofday"`
	EndsAt     string          `json:"ends_at" gorm:"size:8;not null" validate:"timeofday"`
	Percentage decimal.Decimal `json:"percentage" gorm:"type:decimal(5,2);not null" validate:"gte=-100,lte=100"`
}

func (BookablePrice) TableName() string {
	return "bookable_prices"
}

// Override converts the record for the engine.
func (p BookablePrice) Override() (pricing.PriceOverride, error) {
	return pricing.NewPriceOverride(p.Weekday, p.StartsAt, p.EndsAt, p.Percentage)
}

func (p *BookablePrice) Validate() error {
	return errors.Join(check(p)...)
}

func (p *BookablePrice) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}
