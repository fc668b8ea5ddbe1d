package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationRead is one category share of a payment as stored at creation.
type AllocationRead struct {
	Category   string          `json:"category"`
	Percentage int64           `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

// PaymentRead is a read-optimized payment projection.
type PaymentRead struct {
	ID            uuid.UUID        `json:"id"`
	StudentID     uuid.UUID        `json:"studentId"`
	StudentName   string           `json:"studentName"`
	Amount        decimal.Decimal  `json:"amount"`
	Currency      string           `json:"currency"`
	PaymentMethod string           `json:"paymentMethod"`
	PaymentDate   time.Time        `json:"paymentDate"`
	Description   string           `json:"description"`
	InvoiceNumber string           `json:"invoiceNumber"`
	Status        string           `json:"status"`
	AccountID     string           `json:"accountId,omitempty"`
	Allocations   []AllocationRead `json:"allocations,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// PaymentCreate is the command shape for recording a payment. Allocations are
// filled in by the service from the receipt book's percentage table, never by
// the caller.
type PaymentCreate struct {
	ID            uuid.UUID
	StudentID     uuid.UUID
	StudentName   string
	Amount        decimal.Decimal
	Currency      string
	PaymentMethod string
	PaymentDate   time.Time
	Description   string
	InvoiceNumber string
	Status        string
	AccountID     string
	Allocations   []AllocationRead
}

// PaymentUpdate carries optional payment edits.
type PaymentUpdate struct {
	StudentID     *uuid.UUID
	Amount        *decimal.Decimal
	Currency      *string
	PaymentMethod *string
	PaymentDate   *time.Time
	Description   *string
	Status        *string
	AccountID     *string
	// Allocations, when non-nil, replaces the stored allocation snapshot
	// wholesale. The service fills it from the receipt book's percentage
	// table whenever the amount or account changes, never the caller.
	Allocations []AllocationRead
}
