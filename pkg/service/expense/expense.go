// Package expense provides the expense recording service.
package expense

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farai/schoolledger/pkg/currency"
	"github.com/farai/schoolledger/pkg/domain"
	"github.com/farai/schoolledger/pkg/dto"
	"github.com/farai/schoolledger/pkg/ledger"
	expenserepo "github.com/farai/schoolledger/pkg/repository/expense"
)

// DeductionRecorder writes the system-generated negative payment that keeps
// recorded revenue honest when an expense is paid straight out of takings.
type DeductionRecorder interface {
	RecordDeduction(ctx context.Context, amount decimal.Decimal, cur currency.Code, description string) (*dto.PaymentRead, error)
}

// Service wraps expense data access with validation against the receipt
// book configuration.
type Service struct {
	expenses   expenserepo.Repository
	deductions DeductionRecorder
	logger     *slog.Logger
}

// NewService creates an expense service. deductions may be nil when the
// caller does not want revenue deductions written alongside tagged expenses.
func NewService(expenses expenserepo.Repository, deductions DeductionRecorder, logger *slog.Logger) *Service {
	return &Service{expenses: expenses, deductions: deductions, logger: logger}
}

// RecordExpense validates and records an expense. An expense tagged against
// a receipt-book allocation must name a configured account and one of its
// split categories.
func (s *Service) RecordExpense(ctx context.Context, create dto.ExpenseCreate) (*dto.ExpenseRead, error) {
	if _, err := currency.ParseCode(create.Currency); err != nil {
		return nil, err
	}
	if create.AccountID != "" {
		account, ok := ledger.LookupAccount(create.AccountID)
		if !ok {
			return nil, domain.ErrUnknownAccount
		}
		if create.AllocationCategory != "" {
			if _, inSplit := account.Percent(create.AllocationCategory); !inSplit {
				return nil, domain.ErrUnknownAccount
			}
		}
	}
	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	if create.Date.IsZero() {
		create.Date = time.Now()
	}
	if err := s.expenses.Create(ctx, create); err != nil {
		return nil, err
	}

	// An expense drawn against a receipt-book allocation is paid straight
	// out of takings, so a matching revenue deduction is written. The
	// deduction carries no account id; the allocation balance already drops
	// through the expense itself.
	if s.deductions != nil && create.AccountID != "" && create.AllocationCategory != "" {
		cur, _ := currency.ParseCode(create.Currency)
		desc := fmt.Sprintf("Deduction for expense: %s", create.Description)
		if _, err := s.deductions.RecordDeduction(ctx, create.Amount, cur, desc); err != nil {
			s.logger.Warn("expense recorded but revenue deduction failed",
				"expense_id", create.ID, "error", err)
		}
	}
	return s.expenses.Get(ctx, create.ID)
}

// UpdateExpense edits an expense.
func (s *Service) UpdateExpense(ctx context.Context, id uuid.UUID, update dto.ExpenseUpdate) (*dto.ExpenseRead, error) {
	if update.Currency != nil {
		if _, err := currency.ParseCode(*update.Currency); err != nil {
			return nil, err
		}
	}
	if err := s.expenses.Update(ctx, id, update); err != nil {
		return nil, err
	}
	return s.expenses.Get(ctx, id)
}

// GetExpense returns one expense.
func (s *Service) GetExpense(ctx context.Context, id uuid.UUID) (*dto.ExpenseRead, error) {
	return s.expenses.Get(ctx, id)
}

// ListExpenses returns all expenses, newest first.
func (s *Service) ListExpenses(ctx context.Context) ([]*dto.ExpenseRead, error) {
	return s.expenses.List(ctx)
}

// DeleteExpense removes an expense record.
func (s *Service) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.expenses.Delete(ctx, id)
}
