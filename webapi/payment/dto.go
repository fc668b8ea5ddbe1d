package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRequest is the request body for recording a payment. Allocations are
// never accepted from the caller; the service snapshots them from the
// receipt book's percentage table.
type CreateRequest struct {
	StudentID     uuid.UUID       `json:"studentId"`
	StudentName   string          `json:"studentName"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Currency      string          `json:"currency" validate:"required"`
	PaymentMethod string          `json:"paymentMethod" validate:"omitempty,oneof=cash card bank_transfer check"`
	PaymentDate   *time.Time      `json:"paymentDate"`
	Description   string          `json:"description"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Status        string          `json:"status" validate:"omitempty,oneof=completed pending failed"`
	AccountID     string          `json:"accountId"`
}

// UpdateRequest is the request body for editing a payment.
type UpdateRequest struct {
	StudentID     *uuid.UUID       `json:"studentId"`
	Amount        *decimal.Decimal `json:"amount"`
	Currency      *string          `json:"currency"`
	PaymentMethod *string          `json:"paymentMethod" validate:"omitempty,oneof=cash card bank_transfer check"`
	PaymentDate   *time.Time       `json:"paymentDate"`
	Description   *string          `json:"description"`
	Status        *string          `json:"status" validate:"omitempty,oneof=completed pending failed"`
	AccountID     *string          `json:"accountId"`
}

// DeductionRequest is the request body for a revenue deduction.
type DeductionRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Currency    string          `json:"currency" validate:"required"`
	Description string          `json:"description" validate:"required"`
}
