package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseRead is a read-optimized expense projection.
type ExpenseRead struct {
	ID                 uuid.UUID       `json:"id"`
	Description        string          `json:"description"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	Category           string          `json:"category"`
	Date               time.Time       `json:"date"`
	PaymentMethod      string          `json:"paymentMethod"`
	AccountID          string          `json:"accountId,omitempty"`
	AllocationCategory string          `json:"allocationCategory,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// ExpenseCreate is the command shape for recording an expense.
type ExpenseCreate struct {
	ID                 uuid.UUID
	Description        string
	Amount             decimal.Decimal
	Currency           string
	Category           string
	Date               time.Time
	PaymentMethod      string
	AccountID          string
	AllocationCategory string
}

// ExpenseUpdate carries optional expense edits.
type ExpenseUpdate struct {
	Description        *string
	Amount             *decimal.Decimal
	Currency           *string
	Category           *string
	Date               *time.Time
	PaymentMethod      *string
	AccountID          *string
	AllocationCategory *string
}
