// Package student defines the data access contract for student records.
package student

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farai/schoolledger/pkg/dto"
)

// Repository is the CQRS-style interface for student data access.
//
// ApplyPaymentDelta and ReversePaymentDelta exist because the balance
// invariant must survive concurrent payment writes: both run as a single
// atomic UPDATE in the storage layer, never as read-modify-write in Go.
type Repository interface {
	// Create inserts a new student record from a DTO.
	Create(ctx context.Context, create dto.StudentCreate) error

	// Update updates an existing student by its ID using a DTO.
	Update(ctx context.Context, id uuid.UUID, update dto.StudentUpdate) error

	// Get retrieves a student by its ID as a read-optimized DTO.
	Get(ctx context.Context, id uuid.UUID) (*dto.StudentRead, error)

	// List lists all students as read-optimized DTOs.
	List(ctx context.Context) ([]*dto.StudentRead, error)

	// Delete removes a student record.
	Delete(ctx context.Context, id uuid.UUID) error

	// ApplyPaymentDelta adds a USD-equivalent delta to the student's paid
	// amount and recomputes the outstanding balance, atomically. A negative
	// delta lowers the paid amount without clamping.
	ApplyPaymentDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error

	// ReversePaymentDelta subtracts a USD-equivalent amount from the
	// student's paid amount, flooring paid at zero, and recomputes the
	// outstanding balance, atomically.
	ReversePaymentDelta(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
}
