package migrations

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/beesaferoot/gorm-bookings/migration"
)

type ticketableBooking struct {
	gorm.Model
	TicketableID uint              `gorm:"not null;index"`
	Ticketable   *ticketable       `gorm:"constraint:OnDelete:CASCADE"`
	TicketID     uint              `gorm:"not null;index"`
	Ticket       *ticketableTicket `gorm:"foreignKey:TicketID"`
	CustomerType string            `gorm:"size:150;not null;index:idx_ticketable_bookings_customer"`
	CustomerID   uint              `gorm:"not null;index:idx_ticketable_bookings_customer"`
	Paid         decimal.Decimal   `gorm:"type:decimal(10,2);not null"`
	Currency     string            `gorm:"size:3;not null"`
	IsApproved   bool              `gorm:"not null"`
	IsConfirmed  bool              `gorm:"not null"`
	IsAttended   bool              `gorm:"not null"`
	Notes        string            `gorm:"type:text"`
}

func (ticketableBooking) TableName() string { return "ticketable_bookings" }

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version: "20240101000009",
		Name:    "create_ticketable_bookings",
		Up: func(db *gorm.DB) error {
			return db.Migrator().CreateTable(&ticketableBooking{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable("ticketable_bookings")
		},
	})
}
