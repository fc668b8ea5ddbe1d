package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farai/schoolledger/pkg/currency"
)

// Expense is a deduction against a receipt-book account and, optionally, one
// of its allocation categories. Expenses never touch student balances; they
// only reduce the available balance of an allocation category when queried.
type Expense struct {
	ID                 uuid.UUID
	Description        string
	Amount             decimal.Decimal
	Currency           currency.Code
	Category           string
	Date               time.Time
	PaymentMethod      PaymentMethod
	AccountID          string // optional receipt-book account
	AllocationCategory string // optional category within the account's split
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
