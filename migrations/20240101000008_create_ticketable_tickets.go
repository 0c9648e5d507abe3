package migrations

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/beesaferoot/gorm-bookings/migration"
)

type ticketableTicket struct {
	gorm.Model
	TicketableID uint            `gorm:"not null;uniqueIndex:idx_ticketable_tickets_slug"`
	Ticketable   *ticketable     `gorm:"constraint:OnDelete:CASCADE"`
	Slug         string          `gorm:"size:150;not null;uniqueIndex:idx_ticketable_tickets_slug"`
	Name         string          `gorm:"size:150;not null"`
	Description  string          `gorm:"type:text"`
	IsActive     bool            `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Currency     string          `gorm:"size:3;not null"`
	Quantity     *int
	SortOrder    int `gorm:"not null"`
}

func (ticketableTicket) TableName() string { return "ticketable_tickets" }

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version: "20240101000008",
		Name:    "create_ticketable_tickets",
		Up: func(db *gorm.DB) error {
			return db.Migrator().CreateTable(&ticketableTicket{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable("ticketable_tickets")
		},
	})
}
