package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment represents a payment record in the database. StudentID is nullable
// for system-generated records (deductions) that belong to no student.
type Payment struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key"`
	StudentID     *uuid.UUID `gorm:"type:uuid;index"`
	StudentName   string
	Amount        decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'USD'"`
	PaymentMethod string          `gorm:"type:varchar(16)"`
	PaymentDate   time.Time       `gorm:"type:date;index"`
	Description   string
	InvoiceNumber string       `gorm:"index"`
	Status        string       `gorm:"type:varchar(16);not null;default:'completed'"`
	AccountID     string       `gorm:"type:varchar(8);index"`
	Allocations   []Allocation `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the Payment model.
func (Payment) TableName() string {
	return "payments"
}

// Allocation is one category share of a payment, snapshotted at creation and
// rewritten when the payment's amount or account is edited.
type Allocation struct {
	ID         uint      `gorm:"primary_key"`
	PaymentID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Category   string    `gorm:"type:varchar(32);not null"`
	Percentage int64
	Amount     decimal.Decimal `gorm:"type:numeric(20,4);not null"`
}

// TableName specifies the table name for the Allocation model.
func (Allocation) TableName() string {
	return "payment_allocations"
}
