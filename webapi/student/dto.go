package student

import (
	"time"

	"github.com/shopspring/decimal"
)

// EnrollRequest is the request body for enrolling a student.
type EnrollRequest struct {
	FirstName      string          `json:"firstName" validate:"required"`
	LastName       string          `json:"lastName" validate:"required"`
	Class          string          `json:"class"`
	Status         string          `json:"status" validate:"omitempty,oneof=active inactive suspended graduated"`
	EnrollmentDate *time.Time      `json:"enrollmentDate"`
	TotalFees      decimal.Decimal `json:"totalFees" validate:"required"`
}

// UpdateRequest is the request body for editing a student. Paid and
// outstanding figures are not accepted here; they move only through the
// payment endpoints.
type UpdateRequest struct {
	FirstName *string          `json:"firstName"`
	LastName  *string          `json:"lastName"`
	Class     *string          `json:"class"`
	Status    *string          `json:"status" validate:"omitempty,oneof=active inactive suspended graduated"`
	TotalFees *decimal.Decimal `json:"totalFees"`
}
