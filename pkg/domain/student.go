// Package domain holds the school ledger's core entities: students with
// their billing snapshot, payments, and expenses.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StudentStatus is the enrollment status of a student.
type StudentStatus string

const (
	StudentActive    StudentStatus = "active"
	StudentInactive  StudentStatus = "inactive"
	StudentSuspended StudentStatus = "suspended"
	StudentGraduated StudentStatus = "graduated"
)

// Student is a student's identity plus billing snapshot.
//
// TotalFees, PaidAmount and OutstandingBalance are USD-equivalent figures:
// payments in other currencies are converted through the static rate table
// before they touch the snapshot. The invariant
//
//	OutstandingBalance == max(0, TotalFees - PaidAmount)
//
// must hold after every payment mutation. PaidAmount and OutstandingBalance
// are mutated exclusively through payment create/update/delete; no other
// flow edits them directly.
type Student struct {
	ID                 uuid.UUID
	FirstName          string
	LastName           string
	Class              string
	Status             StudentStatus
	EnrollmentDate     time.Time
	TotalFees          decimal.Decimal
	PaidAmount         decimal.Decimal
	OutstandingBalance decimal.Decimal
}

// FullName returns the student's display name as printed on receipts.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
