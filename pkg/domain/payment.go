package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farai/schoolledger/pkg/currency"
)

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCard         PaymentMethod = "card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheck        PaymentMethod = "check"
)

// Allocation is the portion of one payment assigned to one budget category,
// snapshotted at creation time from the receipt book's percentage table.
type Allocation struct {
	Category   string          `json:"category"`
	Percentage int64           `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

// Payment is a financial event. Once completed it is treated as immutable
// history; updates and deletes reverse their effect through the reconciler
// rather than rewriting the past silently.
//
// Amount is positive for normal receipts. Negative amounts are reserved for
// system-generated deduction/reversal records, which flow through the same
// create path and intentionally reduce the student's paid amount.
type Payment struct {
	ID            uuid.UUID
	StudentID     uuid.UUID // uuid.Nil for system records with no student
	StudentName   string
	Amount        decimal.Decimal
	Currency      currency.Code
	PaymentMethod PaymentMethod
	PaymentDate   time.Time // calendar date; time of day is not meaningful
	Description   string
	InvoiceNumber string
	Status        PaymentStatus
	AccountID     string // optional receipt-book account
	Allocations   []Allocation
}

// Completed reports whether the payment counts toward revenue and balances.
func (p *Payment) Completed() bool {
	return p.Status == PaymentCompleted
}

// AllocationFor returns the stored allocation amount for category, if any.
func (p *Payment) AllocationFor(category string) (decimal.Decimal, bool) {
	for _, a := range p.Allocations {
		if a.Category == category {
			return a.Amount, true
		}
	}
	return decimal.Zero, false
}
