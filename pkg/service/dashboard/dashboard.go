// Package dashboard derives the read-only reporting views: the financial
// summary and the receipt-book allocation balances. Everything is computed
// from fresh snapshots of the stored collections on each call.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farai/schoolledger/pkg/currency"
	"github.com/farai/schoolledger/pkg/domain"
	"github.com/farai/schoolledger/pkg/dto"
	"github.com/farai/schoolledger/pkg/ledger"
	expenserepo "github.com/farai/schoolledger/pkg/repository/expense"
	paymentrepo "github.com/farai/schoolledger/pkg/repository/payment"
	studentrepo "github.com/farai/schoolledger/pkg/repository/student"
	"github.com/farai/schoolledger/pkg/summary"
)

// Service computes reporting views over the stored collections.
type Service struct {
	students studentrepo.Repository
	payments paymentrepo.Repository
	expenses expenserepo.Repository
	logger   *slog.Logger
}

// NewService creates a dashboard service.
func NewService(
	students studentrepo.Repository,
	payments paymentrepo.Repository,
	expenses expenserepo.Repository,
	logger *slog.Logger,
) *Service {
	return &Service{students: students, payments: payments, expenses: expenses, logger: logger}
}

// Summary computes the financial summary anchored on ref. Passing a past
// date views that day and month as "today".
func (s *Service) Summary(ctx context.Context, ref time.Time) (*summary.Summary, error) {
	students, payments, expenses, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out, err := summary.Calculate(students, payments, expenses, ref)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AccountBalance returns the unspent balance of one allocation category of a
// receipt book, in the book's own currency.
func (s *Service) AccountBalance(ctx context.Context, accountID, category string) (decimal.Decimal, error) {
	account, ok := ledger.LookupAccount(accountID)
	if !ok {
		return decimal.Decimal{}, domain.ErrUnknownAccount
	}
	_, payments, expenses, err := s.snapshot(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return ledger.AvailableBalance(accountID, category, account.Currency, payments, expenses), nil
}

// AllocationPreview shows how a hypothetical amount would split across a
// receipt book's categories, without recording anything.
func (s *Service) AllocationPreview(accountID string, amount decimal.Decimal) ([]domain.Allocation, error) {
	if _, ok := ledger.LookupAccount(accountID); !ok {
		return nil, domain.ErrUnknownAccount
	}
	return ledger.GenerateAllocations(amount, accountID), nil
}

// snapshot loads the three collections and maps them to domain values.
func (s *Service) snapshot(ctx context.Context) ([]domain.Student, []domain.Payment, []domain.Expense, error) {
	studentReads, err := s.students.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	paymentReads, err := s.payments.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	expenseReads, err := s.expenses.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	students := make([]domain.Student, 0, len(studentReads))
	for _, r := range studentReads {
		students = append(students, mapStudent(r))
	}
	payments := make([]domain.Payment, 0, len(paymentReads))
	for _, r := range paymentReads {
		payments = append(payments, mapPayment(r))
	}
	expenses := make([]domain.Expense, 0, len(expenseReads))
	for _, r := range expenseReads {
		expenses = append(expenses, mapExpense(r))
	}
	return students, payments, expenses, nil
}

func mapStudent(r *dto.StudentRead) domain.Student {
	return domain.Student{
		ID:                 r.ID,
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Class:              r.Class,
		Status:             domain.StudentStatus(r.Status),
		EnrollmentDate:     r.EnrollmentDate,
		TotalFees:          r.TotalFees,
		PaidAmount:         r.PaidAmount,
		OutstandingBalance: r.OutstandingBalance,
	}
}

func mapPayment(r *dto.PaymentRead) domain.Payment {
	p := domain.Payment{
		ID:            r.ID,
		StudentID:     r.StudentID,
		StudentName:   r.StudentName,
		Amount:        r.Amount,
		Currency:      currency.Code(r.Currency),
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		PaymentDate:   r.PaymentDate,
		Description:   r.Description,
		InvoiceNumber: r.InvoiceNumber,
		Status:        domain.PaymentStatus(r.Status),
		AccountID:     r.AccountID,
	}
	for _, a := range r.Allocations {
		p.Allocations = append(p.Allocations, domain.Allocation{
			Category:   a.Category,
			Percentage: a.Percentage,
			Amount:     a.Amount,
		})
	}
	return p
}

func mapExpense(r *dto.ExpenseRead) domain.Expense {
	return domain.Expense{
		ID:                 r.ID,
		Description:        r.Description,
		Amount:             r.Amount,
		Currency:           currency.Code(r.Currency),
		Category:           r.Category,
		Date:               r.Date,
		PaymentMethod:      domain.PaymentMethod(r.PaymentMethod),
		AccountID:          r.AccountID,
		AllocationCategory: r.AllocationCategory,
		CreatedAt:          r.CreatedAt,
	}
}
