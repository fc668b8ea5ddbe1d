// Package dto holds the data transfer objects that cross the repository
// boundary: create/update command shapes and read-optimized query shapes.
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StudentRead is a read-optimized student projection for queries and API
// responses. Monetary figures are USD-equivalent.
type StudentRead struct {
	ID                 uuid.UUID       `json:"id"`
	FirstName          string          `json:"firstName"`
	LastName           string          `json:"lastName"`
	Class              string          `json:"class"`
	Status             string          `json:"status"`
	EnrollmentDate     time.Time       `json:"enrollmentDate"`
	TotalFees          decimal.Decimal `json:"totalFees"`
	PaidAmount         decimal.Decimal `json:"paidAmount"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// StudentCreate is the command shape for enrolling a student. The billing
// snapshot starts at PaidAmount 0 and OutstandingBalance == TotalFees.
type StudentCreate struct {
	ID             uuid.UUID
	FirstName      string
	LastName       string
	Class          string
	Status         string
	EnrollmentDate time.Time
	TotalFees      decimal.Decimal
}

// StudentUpdate carries optional identity and fee edits. PaidAmount and
// OutstandingBalance are deliberately absent: those move only through the
// payment reconciliation path.
type StudentUpdate struct {
	FirstName *string
	LastName  *string
	Class     *string
	Status    *string
	TotalFees *decimal.Decimal
}
