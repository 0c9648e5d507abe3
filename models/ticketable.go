package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ticketable is a scheduled event sold through tickets rather than by
// time range.
type Ticketable struct {
	gorm.Model
	Slug        string             `json:"slug" gorm:"size:150;not null;uniqueIndex" validate:"required,max=150,alphadash"`
	Name        string             `json:"name" gorm:"size:150;not null" validate:"required,max=150"`
	Description string             `json:"description" gorm:"type:text" validate:"max=32768"`
	IsPublic    bool               `json:"is_public" gorm:"not null"`
	StartsAt    time.Time          `json:"starts_at" gorm:"not null" validate:"required"`
	EndsAt      time.Time          `json:"ends_at" gorm:"not null" validate:"required"`
	Timezone    string             `json:"timezone" gorm:"size:64" validate:"omitempty,max=64,timezone"`
	Location    string             `json:"location" gorm:"size:1500" validate:"max=1500"`
	Tickets     []TicketableTicket `json:"tickets,omitempty" gorm:"foreignKey:TicketableID;constraint:OnDelete:CASCADE" validate:"-"`
}

func (Ticketable) TableName() string {
	return "ticketables"
}

func (t *Ticketable) Validate() error {
	errs := check(t)
	if t.EndsAt.Before(t.StartsAt) {
		errs = append(errs, invalid("ends_at", "is before starts_at"))
	}
	return errors.Join(errs...)
}

func (t *Ticketable) BeforeSave(tx *gorm.DB) error {
	return t.Validate()
}

// TicketableTicket is a ticket type of a ticketable with its own price.
// Slugs are unique per ticketable. A nil Quantity means no stock limit.
type TicketableTicket struct {
	gorm.Model
	TicketableID uint            `json:"ticketable_id" gorm:"not null;uniqueIndex:idx_ticketable_tickets_slug" validate:"required"`
	Slug         string          `json:"slug" gorm:"size:150;not null;uniqueIndex:idx_ticketable_tickets_slug" validate:"required,max=150,alphadash"`
	Name         string          `json:"name" gorm:"size:150;not null" validate:"required,max=150"`
	Description  string          `json:"description" gorm:"type:text" validate:"max=32768"`
	IsActive     bool            `json:"is_active" gorm:"not null"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null" validate:"gte=0"`
	Currency     string          `json:"currency" gorm:"size:3;not null" validate:"required,len=3,alpha"`
	Quantity     *int            `json:"quantity" validate:"omitempty,gte=0,lte=100000"`
	SortOrder    int             `json:"sort_order" gorm:"not null" validate:"gte=0,lte=100000"`
}

func (TicketableTicket) TableName() string {
	return "ticketable_tickets"
}

func (t *TicketableTicket) Validate() error {
	return errors.Join(check(t)...)
}

func (t *TicketableTicket) BeforeSave(tx *gorm.DB) error {
	return t.Validate()
}

// TicketableBooking is a customer's purchase of one ticket.
type TicketableBooking struct {
	gorm.Model
	TicketableID uint              `json:"ticketable_id" gorm:"not null;index" validate:"required"`
	TicketID     uint              `json:"ticket_id" gorm:"not null;index" validate:"required"`
	Ticket       *TicketableTicket `json:"ticket,omitempty" gorm:"foreignKey:TicketID" validate:"-"`
	CustomerType string            `json:"customer_type" gorm:"size:150;not null;index:idx_ticketable_bookings_customer" validate:"required,max=150"`
	CustomerID   uint              `json:"customer_id" gorm:"not null;index:idx_ticketable_bookings_customer" validate:"required"`
	Paid         decimal.Decimal   `json:"paid" gorm:"type:decimal(10,2);not null" validate:"gte=0"`
	Currency     string            `json:"currency" gorm:"size:3;not null" validate:"required,len=3,alpha"`
	IsApproved   bool              `json:"is_approved" gorm:"not null"`
	IsConfirmed  bool              `json:"is_confirmed" gorm:"not null"`
	IsAttended   bool              `json:"is_attended" gorm:"not null"`
	Notes        string            `json:"notes" gorm:"type:text" validate:"max=32768"`
}

func (TicketableBooking) TableName() string {
	return "ticketable_bookings"
}

func (b *TicketableBooking) Validate() error {
	return errors.Join(check(b)...)
}

func (b *TicketableBooking) BeforeSave(tx *gorm.DB) error {
	return b.Validate()
}
