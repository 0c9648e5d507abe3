package migrations

import (
	"time"

	"gorm.io/gorm"

	"github.com/beesaferoot/gorm-bookings/migration"
)

type ticketable struct {
	gorm.Model
	Slug        string    `gorm:"size:150;not null;uniqueIndex"`
	Name        string    `gorm:"size:150;not null"`
	Description string    `gorm:"type:text"`
	IsPublic    bool      `gorm:"not null"`
	StartsAt    time.Time `gorm:"not null"`
	EndsAt      time.Time `gorm:"not null"`
	Timezone    string    `gorm:"size:64"`
	Location    string    `gorm:"size:1500"`
}

func (ticketable) TableName() string { return "ticketables" }

func init() {
	migration.RegisterMigration(&migration.Migration{
		Version: "20240101000007",
		Name:    "create_ticketables",
		Up: func(db *gorm.DB) error {
			return db.Migrator().CreateTable(&ticketable{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable("ticketables")
		},
	})
}
