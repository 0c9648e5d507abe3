package models

import (
	"errors"

	"gorm.io/gorm"
)

// BookableAvailability marks a range of a bookable as bookable or not.
// From and To are read according to Range. Records are stored and listed
// only; nothing in this module evaluates them against bookings.
type BookableAvailability struct {
	gorm.Model
	BookableID uint   `json:"bookable_id" gorm:"not null;index" validate:"required"`
	Range      string `json:"range" gorm:"size:16;not null" validate:"required,oneof=unit date month week day datetime time time-sun time-mon time-tue time-wed time-thu time-fri time-sat"`
	From       string `json:"from" gorm:"column:range_from;size:150;not null" validate:"required,max=150"`
	To         string `json:"to" gorm:"column:range_to;size:150;not null" validate:"required,max=150"`
	IsBookable bool   `json:"is_bookable" gorm:"not null"`
	Priority   *int   `json:"priority" validate:"omitempty,gte=0,lte=65535"`
}

func (BookableAvailability) TableName() string {
	return "bookable_availabilities"
}

func (a *BookableAvailability) Validate() error {
	return errors.Join(check(a)...)
}

func (a *BookableAvailability) BeforeSave(tx *gorm.DB) error {
	return a.Validate()
}
