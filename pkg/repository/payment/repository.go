// Package payment defines the data access contract for payment records.
package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/farai/schoolledger/pkg/dto"
)

// Repository is the CQRS-style interface for payment data access.
type Repository interface {
	// Create inserts a new payment record, including its allocation rows.
	Create(ctx context.Context, create dto.PaymentCreate) error

	// Update updates an existing payment by its ID using a DTO.
	Update(ctx context.Context, id uuid.UUID, update dto.PaymentUpdate) error

	// Get retrieves a payment by its ID as a read-optimized DTO.
	Get(ctx context.Context, id uuid.UUID) (*dto.PaymentRead, error)

	// List lists all payments, newest payment date first.
	List(ctx context.Context) ([]*dto.PaymentRead, error)

	// ListByStudent lists a student's payments, newest payment date first.
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*dto.PaymentRead, error)

	// Delete removes a payment record and its allocation rows.
	Delete(ctx context.Context, id uuid.UUID) error
}
