package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/beesaferoot/gorm-bookings/pricing"
)

// Options carries free-form booking attributes, stored as a JSON object.
type Options map[string]string

// BookableBooking is a reservation of a bookable by a customer.
type BookableBooking struct {
	gorm.Model
	BookableID   uint                   `json:"bookable_id" gorm:"not null;index" validate:"required"`
	Bookable     *Bookable              `json:"bookable,omitempty" gorm:"foreignKey:BookableID" validate:"-"`
	CustomerType string                 `json:"customer_type" gorm:"size:150;not null;index:idx_bookable_bookings_customer" validate:"required,max=150"`
	CustomerID   uint                   `json:"customer_id" gorm:"not null;index:idx_bookable_bookings_customer" validate:"required"`
	StartsAt     time.Time              `json:"starts_at" gorm:"not null;index" validate:"required"`
	EndsAt       *time.Time             `json:"ends_at"`
	CanceledAt   *time.Time             `json:"canceled_at"`
	Timezone     string                 `json:"timezone" gorm:"size:64" validate:"omitempty,max=64,timezone"`
	Price        decimal.NullDecimal    `json:"price" gorm:"type:decimal(10,2)" validate:"omitempty,gte=0"`
	TotalPaid    decimal.Decimal        `json:"total_paid" gorm:"type:decimal(10,2);not null" validate:"gte=0"`
	Currency     string                 `json:"currency" gorm:"size:3;not null" validate:"required,len=3,alpha"`
	Formula      *pricing.PriceEquation `json:"formula" gorm:"type:text;serializer:json" validate:"-"`
	Options      Options                `json:"options" gorm:"type:text;serializer:json"`
	Notes        string                 `json:"notes" gorm:"type:text" validate:"max=32768"`
}

func (BookableBooking) TableName() string {
	return "bookable_bookings"
}

// EffectiveEnd returns the stored end or, when unset, one calendar day
// after the start in the booking's timezone.
func (b BookableBooking) EffectiveEnd() time.Time {
	if b.EndsAt != nil {
		return *b.EndsAt
	}
	loc, err := b.Location(b.StartsAt.Location())
	if err != nil {
		loc = b.StartsAt.Location()
	}
	return b.StartsAt.In(loc).AddDate(0, 0, 1).In(b.StartsAt.Location())
}

func (b BookableBooking) IsCancelled() bool {
	return b.CanceledAt != nil
}

func (b BookableBooking) IsPast(now time.Time) bool {
	return !b.IsCancelled() && b.EffectiveEnd().Before(now)
}

func (b BookableBooking) IsFuture(now time.Time) bool {
	return !b.IsCancelled() && b.StartsAt.After(now)
}

func (b BookableBooking) IsCurrent(now time.Time) bool {
	return !b.IsCancelled() && !b.IsPast(now) && !b.IsFuture(now)
}

// Location resolves the booking timezone, falling back to fallback when unset.
func (b BookableBooking) Location(fallback *time.Location) (*time.Location, error) {
	if b.Timezone == "" {
		return fallback, nil
	}
	return time.LoadLocation(b.Timezone)
}

func (b *BookableBooking) Validate() error {
	errs := check(b)
	if b.EndsAt != nil && b.EndsAt.Before(b.StartsAt) {
		errs = append(errs, invalid("ends_at", "is before starts_at"))
	}
	return errors.Join(errs...)
}

func (b *BookableBooking) BeforeSave(tx *gorm.DB) error {
	return b.Validate()
}
