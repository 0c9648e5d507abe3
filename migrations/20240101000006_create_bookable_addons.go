package migrations

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/beesaferoot/gorm-bookings/migration"
)

type bookableAddon struct {
	gorm.Model
	BookableID       uint            `gorm:"not null;uniqueIndex:idx_bookable_addons_slug"`
	Bookable         *bookable       `gorm:"constraint:OnDelete:CASCADE"`
	Slug             string          `gorm:"size:150;not null;uniqueIndex:idx_bookable_addons_slug"`
	Name             string          `gorm:"size:150;not null"`
	Description      string          `gorm:"type:text"`
	BaseCost         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	BaseCostModifier string          `gorm:"size:1;not null"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UnitCostModifier string          `gorm:"size:1;not null"`
}

func (bookableAddon) TableName() string { return "bookable_addons" }

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version: "20240101000006",
		Name:    "create_bookable_addons",
		Up: func(db *gorm.DB) error {
			return db.Migrator().CreateTable(&bookableAddon{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable("bookable_addons")
		},
	})
}
