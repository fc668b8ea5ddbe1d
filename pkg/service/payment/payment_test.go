package payment

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farai/schoolledger/pkg/domain"
	"github.com/farai/schoolledger/pkg/dto"
	"github.com/farai/schoolledger/pkg/ledger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakePaymentRepo is an in-memory payment.Repository.
type fakePaymentRepo struct {
	records map[uuid.UUID]dto.PaymentCreate
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{records: make(map[uuid.UUID]dto.PaymentCreate)}
}

func (f *fakePaymentRepo) Create(_ context.Context, create dto.PaymentCreate) error {
	f.records[create.ID] = create
	return nil
}

func (f *fakePaymentRepo) Update(_ context.Context, id uuid.UUID, update dto.PaymentUpdate) error {
	p, ok := f.records[id]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	if update.StudentID != nil {
		p.StudentID = *update.StudentID
	}
	if update.Amount != nil {
		p.Amount = *update.Amount
	}
	if update.Currency != nil {
		p.Currency = *update.Currency
	}
	if update.Status != nil {
		p.Status = *update.Status
	}
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.AccountID != nil {
		p.AccountID = *update.AccountID
	}
	if update.Allocations != nil {
		p.Allocations = update.Allocations
	}
	f.records[id] = p
	return nil
}

func (f *fakePaymentRepo) Get(_ context.Context, id uuid.UUID) (*dto.PaymentRead, error) {
	p, ok := f.records[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return &dto.PaymentRead{
		ID:          p.ID,
		StudentID:   p.StudentID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		PaymentDate: p.PaymentDate,
		Description: p.Description,
		Status:      p.Status,
		AccountID:   p.AccountID,
		Allocations: p.Allocations,
	}, nil
}

func (f *fakePaymentRepo) List(ctx context.Context) ([]*dto.PaymentRead, error) {
	var out []*dto.PaymentRead
	for id := range f.records {
		p, _ := f.Get(ctx, id)
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePaymentRepo) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*dto.PaymentRead, error) {
	all, _ := f.List(ctx)
	var out []*dto.PaymentRead
	for _, p := range all {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.records[id]; !ok {
		return domain.ErrPaymentNotFound
	}
	delete(f.records, id)
	return nil
}

// fakeStudentRepo is an in-memory student.Repository applying the same
// delta semantics as the SQL statements.
type fakeStudentRepo struct {
	students map[uuid.UUID]*dto.StudentRead
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[uuid.UUID]*dto.StudentRead)}
}

func (f *fakeStudentRepo) add(totalFees, paid string) uuid.UUID {
	id := uuid.New()
	fees := dec(totalFees)
	p := dec(paid)
	outstanding := decimal.Max(fees.Sub(p), decimal.Zero)
	f.students[id] = &dto.StudentRead{
		ID: id, TotalFees: fees, PaidAmount: p, OutstandingBalance: outstanding,
	}
	return id
}

func (f *fakeStudentRepo) Create(_ context.Context, create dto.StudentCreate) error {
	f.students[create.ID] = &dto.StudentRead{
		ID: create.ID, TotalFees: create.TotalFees,
		PaidAmount: decimal.Zero, OutstandingBalance: create.TotalFees,
	}
	return nil
}

func (f *fakeStudentRepo) Update(context.Context, uuid.UUID, dto.StudentUpdate) error { return nil }

func (f *fakeStudentRepo) Get(_ context.Context, id uuid.UUID) (*dto.StudentRead, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, domain.ErrStudentNotFound
	}
	return s, nil
}

func (f *fakeStudentRepo) List(context.Context) ([]*dto.StudentRead, error) {
	var out []*dto.StudentRead
	for _, s := range f.students {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStudentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.students, id)
	return nil
}

func (f *fakeStudentRepo) ApplyPaymentDelta(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	s, ok := f.students[id]
	if !ok {
		return domain.ErrStudentNotFound
	}
	s.PaidAmount = s.PaidAmount.Add(delta)
	s.OutstandingBalance = decimal.Max(s.TotalFees.Sub(s.PaidAmount), decimal.Zero)
	return nil
}

func (f *fakeStudentRepo) ReversePaymentDelta(_ context.Context, id uuid.UUID, amount decimal.Decimal) error {
	s, ok := f.students[id]
	if !ok {
		return domain.ErrStudentNotFound
	}
	s.PaidAmount = decimal.Max(s.PaidAmount.Sub(amount), decimal.Zero)
	s.OutstandingBalance = decimal.Max(s.TotalFees.Sub(s.PaidAmount), decimal.Zero)
	return nil
}

func newTestService() (*Service, *fakePaymentRepo, *fakeStudentRepo) {
	payments := newFakePaymentRepo()
	students := newFakeStudentRepo()
	return NewService(payments, students, slog.Default()), payments, students
}

func TestCreatePaymentUpdatesBalance(t *testing.T) {
	svc, _, students := newTestService()
	sid := students.add("1000", "400")

	p, err := svc.CreatePayment(context.Background(), dto.PaymentCreate{
		StudentID: sid,
		Amount:    dec("300"),
		Currency:  "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", p.Status)

	s := students.students[sid]
	assert.True(t, dec("700").Equal(s.PaidAmount))
	assert.True(t, dec("300").Equal(s.OutstandingBalance))
}

func TestCreatePaymentSnapshotsAllocations(t *testing.T) {
	svc, _, students := newTestService()
	sid := students.add("5000", "0")

	p, err := svc.CreatePayment(context.Background(), dto.PaymentCreate{
		StudentID: sid,
		Amount:    dec("1000"),
		Currency:  "ZAR",
		AccountID: "406",
	})
	require.NoError(t, err)
	require.Len(t, p.Allocations, 8)
	assert.Equal(t, "building", p.Allocations[0].Category)
	assert.True(t, dec("300").Equal(p.Allocations[0].Amount))
}

func TestCreatePaymentRejectsCeilingBreach(t *testing.T) {
	svc, _, students := newTestService()
	sid := students.add("5000", "0")

	_, err := svc.CreatePayment(context.Background(), dto.PaymentCreate{
		StudentID: sid,
		Amount:    dec("1001"),
		Currency:  "ZAR",
		AccountID: "406",
	})
	assert.ErrorIs(t, err, domain.ErrCeilingExceeded)
}

func TestCreatePaymentRejectsUnknownCurrencyAndAccount(t *testing.T) {
	svc, _, students := newTestService()
	sid := students.add("1000", "0")

	_, err := svc.CreatePayment(context.Background(), dto.PaymentCreate{
		StudentID: sid, Amount: dec("10"), Currency: "EUR",
	})
	assert.Error(t, err)

	_, err = svc.CreatePayment(context.Background(), dto.PaymentCreate{
		StudentID: sid, Amount: dec("10"), Currency: "USD", AccountID: "777",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownAccount)
}

func TestCreatePaymentMissingStudentStillPersists(t *testing.T) {
	svc, payments, _ := newTestService()

	p, err := svc.CreatePayment(context.Background(), dto.PaymentCreate{
		StudentID: uuid.New(),
		Amount:    dec("300"),
		Currency:  "USD",
	})
	require.NoError(t, err, "the receipt survives even when the student is gone")
	assert.Contains(t, payments.records, p.ID)
}

func TestDeletePaymentReversesBalance(t *testing.T) {
	svc, _, students := newTestService()
	sid := students.add("1000", "400")

	p, err := svc.CreatePayment(context.Background(), dto.PaymentCreate{
		StudentID: sid, Amount: dec("300"), Currency: "USD",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePayment(context.Background(), p.ID))
	s := students.students[sid]
	assert.True(t, dec("400").Equal(s.PaidAmount))
	assert.True(t, dec("600").Equal(s.OutstandingBalance))
}

func TestUpdatePaymentAppliesDelta(t *testing.T) {
	svc, _, students := newTestService()
	sid := students.add("1000", "0")

	p, err := svc.CreatePayment(context.Background(), dto.PaymentCreate{
		StudentID: sid, Amount: dec("300"), Currency: "USD",
	})
	require.NoError(t, err)

	newAmount := dec("450")
	_, err = svc.UpdatePayment(context.Background(), p.ID, dto.PaymentUpdate{Amount: &newAmount})
	require.NoError(t, err)

	s := students.students[sid]
	assert.True(t, dec("450").Equal(s.PaidAmount))
	assert.True(t, dec("550").Equal(s.OutstandingBalance))
}

func TestUpdatePaymentReassignsStudent(t *testing.T) {
	svc, _, students := newTestService()
	a := students.add("1000", "0")
	b := students.add("800", "0")

	p, err := svc.CreatePayment(context.Background(), dto.PaymentCreate{
		StudentID: a, Amount: dec("300"), Currency: "USD",
	})
	require.NoError(t, err)

	_, err = svc.UpdatePayment(context.Background(), p.ID, dto.PaymentUpdate{StudentID: &b})
	require.NoError(t, err)

	assert.True(t, students.students[a].PaidAmount.IsZero())
	assert.True(t, dec("300").Equal(students.students[b].PaidAmount))
	assert.True(t, dec("500").Equal(students.students[b].OutstandingBalance))
}

func TestUpdatePaymentRegeneratesAllocations(t *testing.T) {
	svc, _, students := newTestService()
	sid := students.add("5000", "0")

	p, err := svc.CreatePayment(context.Background(), dto.PaymentCreate{
		StudentID: sid, Amount: dec("1000"), Currency: "ZAR", AccountID: "406",
	})
	require.NoError(t, err)
	require.Len(t, p.Allocations, 8)

	newAmount := dec("500")
	updated, err := svc.UpdatePayment(context.Background(), p.ID, dto.PaymentUpdate{Amount: &newAmount})
	require.NoError(t, err)

	require.Len(t, updated.Allocations, 8)
	sum := decimal.Zero
	for _, a := range updated.Allocations {
		sum = sum.Add(a.Amount)
	}
	assert.True(t, dec("500").Equal(sum), "snapshot tracks the edited amount")
	assert.Equal(t, "building", updated.Allocations[0].Category)
	assert.True(t, dec("150").Equal(updated.Allocations[0].Amount))

	check := domain.Payment{ID: updated.ID, Amount: updated.Amount}
	for _, a := range updated.Allocations {
		check.Allocations = append(check.Allocations, domain.Allocation{
			Category: a.Category, Percentage: a.Percentage, Amount: a.Amount,
		})
	}
	assert.NoError(t, ledger.CheckAllocations(check))
}

func TestUpdatePaymentAccountChangeRewritesAllocations(t *testing.T) {
	svc, _, students := newTestService()
	sid := students.add("5000", "0")

	p, err := svc.CreatePayment(context.Background(), dto.PaymentCreate{
		StudentID: sid, Amount: dec("100"), Currency: "ZAR", AccountID: "406",
	})
	require.NoError(t, err)
	require.Len(t, p.Allocations, 8)

	// 402 carries no split, so the stale snapshot must be cleared.
	plain := "402"
	updated, err := svc.UpdatePayment(context.Background(), p.ID, dto.PaymentUpdate{AccountID: &plain})
	require.NoError(t, err)
	assert.Empty(t, updated.Allocations)
}

func TestUpdatePaymentEnforcesCeiling(t *testing.T) {
	svc, _, students := newTestService()
	sid := students.add("5000", "0")

	p, err := svc.CreatePayment(context.Background(), dto.PaymentCreate{
		StudentID: sid, Amount: dec("1000"), Currency: "ZAR", AccountID: "406",
	})
	require.NoError(t, err)

	// 408 caps at 300; the unchanged 1000 amount breaches it.
	projects := "408"
	_, err = svc.UpdatePayment(context.Background(), p.ID, dto.PaymentUpdate{AccountID: &projects})
	assert.ErrorIs(t, err, domain.ErrCeilingExceeded)
}

func TestUpdatePaymentWithoutAmountKeepsAllocations(t *testing.T) {
	svc, _, students := newTestService()
	sid := students.add("5000", "0")

	p, err := svc.CreatePayment(context.Background(), dto.PaymentCreate{
		StudentID: sid, Amount: dec("1000"), Currency: "ZAR", AccountID: "406",
	})
	require.NoError(t, err)

	note := "captured at the gate"
	updated, err := svc.UpdatePayment(context.Background(), p.ID, dto.PaymentUpdate{Description: &note})
	require.NoError(t, err)
	assert.Equal(t, p.Allocations, updated.Allocations)
}

func TestRecordDeduction(t *testing.T) {
	svc, _, _ := newTestService()

	p, err := svc.RecordDeduction(context.Background(), dec("80"), "USD", "stationery bought from takings")
	require.NoError(t, err)

	assert.True(t, dec("-80").Equal(p.Amount), "deductions are stored negative")
	assert.Equal(t, uuid.Nil, p.StudentID, "deductions belong to no student")
	assert.Empty(t, p.AccountID, "deductions carry no account so allocation balances stay untouched")
	assert.True(t, p.PaymentDate.Before(time.Now().Add(time.Second)))
}
