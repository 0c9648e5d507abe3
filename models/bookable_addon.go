package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cost modifiers of an addon.
const (
	ModifierAdd      = "+"
	ModifierSubtract = "-"
	ModifierMultiply = "×"
	ModifierDivide   = "÷"
)

// BookableAddon is an optional extra offered with a bookable. Slugs are
// unique per bookable.
type BookableAddon struct {
	gorm.Model
	BookableID       uint            `json:"bookable_id" gorm:"not null;uniqueIndex:idx_bookable_addons_slug" validate:"required"`
	Slug             string          `json:"slug" gorm:"size:150;not null;uniqueIndex:idx_bookable_addons_slug" validate:"required,max=150,alphadash"`
	Name             string          `json:"name" gorm:"size:150;not null" validate:"required,max=150"`
	Description      string          `json:"description" gorm:"type:text" validate:"max=10000"`
	BaseCost         decimal.Decimal `json:"base_cost" gorm:"type:decimal(10,2);not null"`
	BaseCostModifier string          `json:"base_cost_modifier" gorm:"size:1;not null" validate:"oneof=+ - × ÷"`
	UnitCost         decimal.Decimal `json:"unit_cost" gorm:"type:decimal(10,2);not null"`
	UnitCostModifier string          `json:"unit_cost_modifier" gorm:"size:1;not null" validate:"oneof=+ - × ÷"`
}

func (BookableAddon) TableName() string {
	return "bookable_addons"
}

func (a *BookableAddon) Validate() error {
	return errors.Join(check(a)...)
}

func (a *BookableAddon) BeforeSave(tx *gorm.DB) error {
	return a.Validate()
}
