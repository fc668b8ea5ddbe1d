// Package expense defines the data access contract for expense records.
package expense

import (
	"context"

	"github.com/google/uuid"

	"github.com/farai/schoolledger/pkg/dto"
)

// Repository is the CQRS-style interface for expense data access.
type Repository interface {
	// Create inserts a new expense record from a DTO.
	Create(ctx context.Context, create dto.ExpenseCreate) error

	// Update updates an existing expense by its ID using a DTO.
	Update(ctx context.Context, id uuid.UUID, update dto.ExpenseUpdate) error

	// Get retrieves an expense by its ID as a read-optimized DTO.
	Get(ctx context.Context, id uuid.UUID) (*dto.ExpenseRead, error)

	// List lists all expenses, newest date first.
	List(ctx context.Context) ([]*dto.ExpenseRead, error)

	// Delete removes an expense record.
	Delete(ctx context.Context, id uuid.UUID) error
}
