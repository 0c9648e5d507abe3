package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/beesaferoot/gorm-bookings/pricing"
)

// Bookable is a reservable resource and the owner of its pricing.
type Bookable struct {
	gorm.Model
	Slug           string                 `json:"slug" gorm:"size:150;not null;uniqueIndex" validate:"required,max=150,alphadash"`
	Name           string                 `json:"name" gorm:"size:150;not null" validate:"required,max=150"`
	Description    string                 `json:"description" gorm:"type:text" validate:"max=32768"`
	IsActive       bool                   `json:"is_active" gorm:"not null"`
	BasePrice      decimal.Decimal        `json:"base_price" gorm:"type:decimal(10,2);not null" validate:"gte=0"`
	Unit           string                 `json:"unit" gorm:"size:10;not null" validate:"unit"`
	Currency       string                 `json:"currency" gorm:"size:3;not null" validate:"required,len=3,alpha"`
	MinimumUnits   int                    `json:"minimum_units" validate:"gte=0,lte=100000"`
	MaximumUnits   int                    `json:"maximum_units" validate:"gte=0,lte=100000"`
	IsCancelable   bool                   `json:"is_cancelable" gorm:"not null"`
	Capacity       int                    `json:"capacity" validate:"gte=0,lte=100000"`
	SortOrder      int                    `json:"sort_order" gorm:"index" validate:"gte=0,lte=100000"`
	Rates          []BookableRate         `json:"rates,omitempty" gorm:"foreignKey:BookableID;constraint:OnDelete:CASCADE" validate:"-"`
	Prices         []BookablePrice        `json:"prices,omitempty" gorm:"foreignKey:BookableID;constraint:OnDelete:CASCADE" validate:"-"`
	Availabilities []BookableAvailability `json:"availabilities,omitempty" gorm:"foreignKey:BookableID;constraint:OnDelete:CASCADE" validate:"-"`
	Addons         []BookableAddon        `json:"addons,omitempty" gorm:"foreignKey:BookableID;constraint:OnDelete:CASCADE" validate:"-"`
}

func (Bookable) TableName() string {
	return "bookables"
}

// PricingConfig returns the engine view of the resource's pricing.
func (b Bookable) PricingConfig() (pricing.PricingConfig, error) {
	unit, err := pricing.ParseUnit(b.Unit)
	if err != nil {
		return pricing.PricingConfig{}, err
	}
	return pricing.PricingConfig{
		BasePrice: b.BasePrice,
		Unit:      unit,
		Currency:  b.Currency,
	}, nil
}

// Overrides converts the stored prices in their current order.
func (b Bookable) Overrides() ([]pricing.PriceOverride, error) {
	out := make([]pricing.PriceOverride, 0, len(b.Prices))
	for _, p := range b.Prices {
		o, err := p.Override()
		if err != nil {
			return nil, fmt.Errorf("price %d: %w", p.ID, err)
		}
		out = append(out, o)
	}
	return out, nil
}

// RateRules converts the stored rates in their current order.
func (b Bookable) RateRules() []pricing.RateRule {
	out := make([]pricing.RateRule, 0, len(b.Rates))
	for _, r := range b.Rates {
		out = append(out, r.Rule())
	}
	return out
}

// Validate applies the column rules of the bookables table.
func (b *Bookable) Validate() error {
	errs := check(b)
	if b.MaximumUnits > 0 && b.MinimumUnits > b.MaximumUnits {
		errs = append(errs, invalid("minimum_units", "exceeds maximum_units"))
	}
	return errors.Join(errs...)
}

func (b *Bookable) BeforeSave(tx *gorm.DB) error {
	return b.Validate()
}
