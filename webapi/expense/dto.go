package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRequest is the request body for recording an expense.
type CreateRequest struct {
	Description        string          `json:"description" validate:"required"`
	Amount             decimal.Decimal `json:"amount" validate:"required"`
	Currency           string          `json:"currency" validate:"required"`
	Category           string          `json:"category"`
	Date               *time.Time      `json:"date"`
	PaymentMethod      string          `json:"paymentMethod" validate:"omitempty,oneof=cash card bank_transfer check"`
	AccountID          string          `json:"accountId"`
	AllocationCategory string          `json:"allocationCategory"`
}

// UpdateRequest is the request body for editing an expense.
type UpdateRequest struct {
	Description        *string          `json:"description"`
	Amount             *decimal.Decimal `json:"amount"`
	Currency           *string          `json:"currency"`
	Category           *string          `json:"category"`
	Date               *time.Time       `json:"date"`
	PaymentMethod      *string          `json:"paymentMethod" validate:"omitempty,oneof=cash card bank_transfer check"`
	AccountID          *string          `json:"accountId"`
	AllocationCategory *string          `json:"allocationCategory"`
}
