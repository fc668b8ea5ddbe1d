// Package payment orchestrates the payment write path: validation, ceiling
// policy, allocation snapshotting, persistence, and student balance
// reconciliation.
package payment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farai/schoolledger/pkg/currency"
	"github.com/farai/schoolledger/pkg/domain"
	"github.com/farai/schoolledger/pkg/dto"
	"github.com/farai/schoolledger/pkg/ledger"
	paymentrepo "github.com/farai/schoolledger/pkg/repository/payment"
	studentrepo "github.com/farai/schoolledger/pkg/repository/student"
)

// Service coordinates payment writes with the student billing snapshot.
type Service struct {
	payments paymentrepo.Repository
	students studentrepo.Repository
	logger   *slog.Logger
}

// NewService creates a payment service.
func NewService(
	payments paymentrepo.Repository,
	students studentrepo.Repository,
	logger *slog.Logger,
) *Service {
	return &Service{payments: payments, students: students, logger: logger}
}

// CreatePayment validates and records a payment, snapshots its allocations
// from the receipt book's percentage table, and applies the USD-equivalent
// amount to the student's balance.
//
// A payment referencing a missing student is still persisted; the balance
// update is skipped and logged. Receipts must not vanish because a student
// record was deleted first.
func (s *Service) CreatePayment(ctx context.Context, create dto.PaymentCreate) (*dto.PaymentRead, error) {
	cur, err := currency.ParseCode(create.Currency)
	if err != nil {
		return nil, err
	}

	if create.AccountID != "" {
		account, ok := ledger.LookupAccount(create.AccountID)
		if !ok {
			return nil, domain.ErrUnknownAccount
		}
		if account.Ceiling.IsPositive() && create.Amount.GreaterThan(account.Ceiling) {
			return nil, domain.ErrCeilingExceeded
		}
	}

	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	if create.Status == "" {
		create.Status = string(domain.PaymentCompleted)
	}
	if create.PaymentDate.IsZero() {
		create.PaymentDate = time.Now()
	}

	// Snapshot the split at creation so later table changes never rewrite
	// history. Callers cannot supply their own allocations.
	create.Allocations = nil
	for _, a := range ledger.GenerateAllocations(create.Amount, create.AccountID) {
		create.Allocations = append(create.Allocations, dto.AllocationRead{
			Category:   a.Category,
			Percentage: a.Percentage,
			Amount:     a.Amount,
		})
	}

	if err := s.payments.Create(ctx, create); err != nil {
		return nil, err
	}

	if create.Status == string(domain.PaymentCompleted) && create.StudentID != uuid.Nil {
		delta, err := currency.ToUSD(create.Amount, cur)
		if err != nil {
			return nil, err
		}
		if err := s.students.ApplyPaymentDelta(ctx, create.StudentID, delta); err != nil {
			if errors.Is(err, domain.ErrStudentNotFound) {
				s.logger.Warn("payment recorded for missing student, balance not updated",
					"payment_id", create.ID, "student_id", create.StudentID)
			} else {
				return nil, err
			}
		}
	}

	return s.payments.Get(ctx, create.ID)
}

// UpdatePayment edits a payment and moves the affected student balances
// accordingly: the old effect is reversed and the new one applied, handling
// amount, currency, status, and student reassignment edits uniformly. An
// amount or account edit regenerates the stored allocation snapshot so it
// keeps summing to the payment's amount.
func (s *Service) UpdatePayment(ctx context.Context, id uuid.UUID, update dto.PaymentUpdate) (*dto.PaymentRead, error) {
	oldP, err := s.payments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Currency != nil {
		if _, err := currency.ParseCode(*update.Currency); err != nil {
			return nil, err
		}
	}

	if update.Amount != nil || update.AccountID != nil {
		amount := oldP.Amount
		if update.Amount != nil {
			amount = *update.Amount
		}
		accountID := oldP.AccountID
		if update.AccountID != nil {
			accountID = *update.AccountID
		}
		if accountID != "" {
			account, ok := ledger.LookupAccount(accountID)
			if !ok {
				return nil, domain.ErrUnknownAccount
			}
			if account.Ceiling.IsPositive() && amount.GreaterThan(account.Ceiling) {
				return nil, domain.ErrCeilingExceeded
			}
		}
		// Non-nil even when the new account has no split, so stale rows are
		// cleared rather than kept.
		update.Allocations = make([]dto.AllocationRead, 0)
		for _, a := range ledger.GenerateAllocations(amount, accountID) {
			update.Allocations = append(update.Allocations, dto.AllocationRead{
				Category:   a.Category,
				Percentage: a.Percentage,
				Amount:     a.Amount,
			})
		}
	}

	if err := s.payments.Update(ctx, id, update); err != nil {
		return nil, err
	}
	newP, err := s.payments.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.reconcileUpdate(ctx, oldP, newP); err != nil {
		return nil, err
	}
	return newP, nil
}

// DeletePayment removes a payment and reverses its effect on the student's
// balance, flooring the paid amount at zero.
func (s *Service) DeletePayment(ctx context.Context, id uuid.UUID) error {
	p, err := s.payments.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.payments.Delete(ctx, id); err != nil {
		return err
	}
	return s.reverse(ctx, p)
}

// GetPayment returns one payment.
func (s *Service) GetPayment(ctx context.Context, id uuid.UUID) (*dto.PaymentRead, error) {
	return s.payments.Get(ctx, id)
}

// ListPayments returns all payments, newest first.
func (s *Service) ListPayments(ctx context.Context) ([]*dto.PaymentRead, error) {
	return s.payments.List(ctx)
}

// ListStudentPayments returns one student's payments, newest first.
func (s *Service) ListStudentPayments(ctx context.Context, studentID uuid.UUID) ([]*dto.PaymentRead, error) {
	return s.payments.ListByStudent(ctx, studentID)
}

// ListTodaysPayments returns the payments dated today, newest first.
func (s *Service) ListTodaysPayments(ctx context.Context) ([]*dto.PaymentRead, error) {
	all, err := s.payments.List(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	today := make([]*dto.PaymentRead, 0)
	for _, p := range all {
		y1, m1, d1 := p.PaymentDate.Date()
		y2, m2, d2 := now.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			today = append(today, p)
		}
	}
	return today, nil
}

// RecordDeduction writes a system-generated negative payment that lowers
// recorded revenue, used when an expense is drawn directly against receipts.
// The record belongs to no student and carries no account id, so it neither
// touches a billing snapshot nor double-counts against allocation balances.
func (s *Service) RecordDeduction(ctx context.Context, amount decimal.Decimal, cur currency.Code, description string) (*dto.PaymentRead, error) {
	if !cur.IsValid() {
		return nil, currency.ErrInvalidCurrency
	}
	create := dto.PaymentCreate{
		ID:          uuid.New(),
		Amount:      amount.Abs().Neg(),
		Currency:    string(cur),
		PaymentDate: time.Now(),
		Description: description,
		Status:      string(domain.PaymentCompleted),
	}
	if err := s.payments.Create(ctx, create); err != nil {
		return nil, err
	}
	return s.payments.Get(ctx, create.ID)
}

func completed(p *dto.PaymentRead) bool {
	return p.Status == string(domain.PaymentCompleted)
}

func usdAmount(p *dto.PaymentRead) (decimal.Decimal, error) {
	cur, err := currency.ParseCode(p.Currency)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return currency.ToUSD(p.Amount, cur)
}

// apply credits a payment's USD-equivalent amount to its student, tolerating
// a missing student.
func (s *Service) apply(ctx context.Context, p *dto.PaymentRead) error {
	if !completed(p) || p.StudentID == uuid.Nil {
		return nil
	}
	delta, err := usdAmount(p)
	if err != nil {
		return err
	}
	if err := s.students.ApplyPaymentDelta(ctx, p.StudentID, delta); err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			s.logger.Warn("student missing during balance update",
				"payment_id", p.ID, "student_id", p.StudentID)
			return nil
		}
		return err
	}
	return nil
}

// reverse removes a payment's USD-equivalent amount from its student,
// tolerating a missing student.
func (s *Service) reverse(ctx context.Context, p *dto.PaymentRead) error {
	if !completed(p) || p.StudentID == uuid.Nil {
		return nil
	}
	amount, err := usdAmount(p)
	if err != nil {
		return err
	}
	if err := s.students.ReversePaymentDelta(ctx, p.StudentID, amount); err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			s.logger.Warn("student missing during balance reversal",
				"payment_id", p.ID, "student_id", p.StudentID)
			return nil
		}
		return err
	}
	return nil
}

// reconcileUpdate mirrors ledger.Reconciler.OnUpdate against the repository
// deltas; both derive the move from ledger.ClassifyUpdate.
func (s *Service) reconcileUpdate(ctx context.Context, oldP, newP *dto.PaymentRead) error {
	switch ledger.ClassifyUpdate(oldP.StudentID == newP.StudentID, completed(oldP), completed(newP)) {
	case ledger.UpdateMoveStudent:
		if err := s.reverse(ctx, oldP); err != nil {
			return err
		}
		return s.apply(ctx, newP)
	case ledger.UpdateApplyDelta:
		oldUSD, err := usdAmount(oldP)
		if err != nil {
			return err
		}
		newUSD, err := usdAmount(newP)
		if err != nil {
			return err
		}
		delta := newUSD.Sub(oldUSD)
		if delta.IsZero() || newP.StudentID == uuid.Nil {
			return nil
		}
		if err := s.students.ApplyPaymentDelta(ctx, newP.StudentID, delta); err != nil {
			if errors.Is(err, domain.ErrStudentNotFound) {
				s.logger.Warn("student missing during balance update",
					"payment_id", newP.ID, "student_id", newP.StudentID)
				return nil
			}
			return err
		}
		return nil
	case ledger.UpdateReverseOld:
		return s.reverse(ctx, oldP)
	case ledger.UpdateApplyNew:
		return s.apply(ctx, newP)
	default:
		return nil
	}
}
