package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/beesaferoot/gorm-bookings/migration"
)

type bookableBooking struct {
	gorm.Model
	BookableID   uint      `gorm:"not null;index"`
	Bookable     *bookable `gorm:"foreignKey:BookableID"`
	CustomerType string    `gorm:"size:150;not null;index:idx_bookable_bookings_customer"`
	CustomerID   uint      `gorm:"not null;index:idx_bookable_bookings_customer"`
	StartsAt     time.Time `gorm:"not null;index"`
	EndsAt       *time.Time
	CanceledAt   *time.Time
	Timezone     string              `gorm:"size:64"`
	Price        decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	TotalPaid    decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	Currency     string              `gorm:"size:3;not null"`
	Formula      *string             `gorm:"type:text"`
	Options      *string             `gorm:"type:text"`
	Notes        string              `gorm:"type:text"`
}

func (bookableBooking) TableName() string { return "bookable_bookings" }

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version: "20240101000004",
		Name:    "create_bookable_bookings",
		Up: func(db *gorm.DB) error {
			return db.Migrator().CreateTable(&bookableBooking{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable("bookable_bookings")
		},
	})
}
