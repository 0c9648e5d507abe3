package migrations

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/beesaferoot/gorm-bookings/migration"
)

type bookable struct {
	gorm.Model
	Slug         string          `gorm:"size:150;not null;uniqueIndex"`
	Name         string          `gorm:"size:150;not null"`
	Description  string          `gorm:"type:text"`
	IsActive     bool            `gorm:"not null"`
	BasePrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Unit         string          `gorm:"size:10;not null"`
	Currency     string          `gorm:"size:3;not null"`
	MinimumUnits int
	MaximumUnits int
	IsCancelable bool `gorm:"not null"`
	Capacity     int
	SortOrder    int `gorm:"index"`
}

func (bookable) TableName() string { return "bookables" }

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version: "20240101000001",
		Name:    "create_bookables",
		Up: func(db *gorm.DB) error {
			return db.Migrator().CreateTable(&bookable{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable("bookables")
		},
	})
}
