package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense represents an expense record in the database.
type Expense struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key"`
	Description        string          `gorm:"not null"`
	Amount             decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Currency           string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Category           string          `gorm:"type:varchar(32)"`
	Date               time.Time       `gorm:"type:date;index"`
	PaymentMethod      string          `gorm:"type:varchar(16)"`
	AccountID          string          `gorm:"type:varchar(8);index"`
	AllocationCategory string          `gorm:"type:varchar(32)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the Expense model.
func (Expense) TableName() string {
	return "expenses"
}
