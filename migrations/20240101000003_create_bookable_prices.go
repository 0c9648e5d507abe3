package migrations

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/beesaferoot/gorm-bookings/migration"
)

type bookablePrice struct {
	gorm.Model
	BookableID uint            `gorm:"not null;index"`
	Bookable   *bookable       `gorm:"constraint:OnDelete:CASCADE"`
	Weekday    string          `gorm:"size:3;not null"`
	StartsAt   string          `gorm:"size:8;not null"`
	EndsAt     string          `gorm:"size:8;not null"`
	Percentage decimal.Decimal `gorm:"type:decimal(5,2);not null"`
}

func (bookablePrice) TableName() string { return "bookable_prices" }

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version: "20240101000003",
		Name:    "create_bookable_prices",
		Up: func(db *gorm.DB) error {
			return db.Migrator().CreateTable(&bookablePrice{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable("bookable_prices")
		},
	})
}
