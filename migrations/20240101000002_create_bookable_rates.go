package migrations

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/beesaferoot/gorm-bookings/migration"
)

type bookableRate struct {
	gorm.Model
	BookableID uint            `gorm:"not null;index"`
	Bookable   *bookable       `gorm:"constraint:OnDelete:CASCADE"`
	Percentage decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Operator   string          `gorm:"size:1;not null"`
	Amount     int             `gorm:"not null"`
}

func (bookableRate) TableName() string { return "bookable_rates" }

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version: "20240101000002",
		Name:    "create_bookable_rates",
		Up: func(db *gorm.DB) error {
			return db.Migrator().CreateTable(&bookableRate{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable("bookable_rates")
		},
	})
}
