package migrations

import (
	"gorm.io/gorm"

	"github.com/beesaferoot/gorm-bookings/migration"
)

type bookableAvailability struct {
	gorm.Model
	BookableID uint      `gorm:"not null;index"`
	Bookable   *bookable `gorm:"constraint:OnDelete:CASCADE"`
	Range      string    `gorm:"size:16;not null"`
	From       string    `gorm:"column:range_from;size:150;not null"`
	To         string    `gorm:"column:range_to;size:150;not null"`
	IsBookable bool      `gorm:"not null"`
	Priority   *int
}

func (bookableAvailability) TableName() string { return "bookable_availabilities" }

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version: "20240101000005",
		Name:    "create_bookable_availabilities",
		Up: func(db *gorm.DB) error {
			return db.Migrator().CreateTable(&bookableAvailability{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable("bookable_availabilities")
		},
	})
}
