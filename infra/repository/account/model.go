package account

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a ledger row in the database.
type Account struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number     string    `gorm:"type:varchar(12);not null;uniqueIndex"`
	HolderName string    `gorm:"not null"`
	Balance    float64   `gorm:"not null"`
	Position   int       `gorm:"not null;index"`
	UpdatedAt  time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "ledger_accounts"
}
