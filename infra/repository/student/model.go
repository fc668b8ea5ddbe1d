package student

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Student represents a student record in the database. The three balance
// columns are USD-equivalent figures; paid_amount and outstanding_balance
// are only ever written through the atomic delta statements in this package.
type Student struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	FirstName          string    `gorm:"not null"`
	LastName           string    `gorm:"not null"`
	Class              string
	Status             string          `gorm:"type:varchar(16);not null;default:'active'"`
	EnrollmentDate     time.Time       `gorm:"type:date"`
	TotalFees          decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	PaidAmount         decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	OutstandingBalance decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the Student model.
func (Student) TableName() string {
	return "students"
}
