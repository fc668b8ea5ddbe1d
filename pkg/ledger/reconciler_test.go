package ledger

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farai/schoolledger/pkg/currency"
	"github.com/farai/schoolledger/pkg/domain"
)

func newStudent(totalFees, paid string) *domain.Student {
	fees := dec(totalFees)
	p := dec(paid)
	outstanding := fees.Sub(p)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}
	return &domain.Student{
		ID:                 uuid.New(),
		FirstName:          "Tariro",
		LastName:           "Moyo",
		Status:             domain.StudentActive,
		TotalFees:          fees,
		PaidAmount:         p,
		OutstandingBalance: outstanding,
	}
}

func usdPayment(studentID uuid.UUID, amount string, status domain.PaymentStatus) domain.Payment {
	return domain.Payment{
		ID:        uuid.New(),
		StudentID: studentID,
		Amount:    dec(amount),
		Currency:  currency.USD,
		Status:    status,
	}
}

func TestClassifyUpdate(t *testing.T) {
	cases := []struct {
		name         string
		sameStudent  bool
		oldCompleted bool
		newCompleted bool
		want         UpdateAction
	}{
		{"student moved", false, true, true, UpdateMoveStudent},
		{"student moved while pending", false, false, false, UpdateMoveStudent},
		{"both completed", true, true, true, UpdateApplyDelta},
		{"completion revoked", true, true, false, UpdateReverseOld},
		{"newly completed", true, false, true, UpdateApplyNew},
		{"neither completed", true, false, false, UpdateNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyUpdate(tc.sameStudent, tc.oldCompleted, tc.newCompleted))
		})
	}
}

func TestReconcilerCreateAndDelete(t *testing.T) {
	r := NewReconciler()
	s := newStudent("1000", "400")
	students := []*domain.Student{s}

	p := usdPayment(s.ID, "300", domain.PaymentCompleted)
	require.NoError(t, r.OnCreate(students, p))
	assert.True(t, dec("700").Equal(s.PaidAmount), "paid: %s", s.PaidAmount)
	assert.True(t, dec("300").Equal(s.OutstandingBalance), "outstanding: %s", s.OutstandingBalance)
	assert.True(t, CheckInvariant(s))

	require.NoError(t, r.OnDelete(students, p))
	assert.True(t, dec("400").Equal(s.PaidAmount))
	assert.True(t, dec("600").Equal(s.OutstandingBalance))
	assert.True(t, CheckInvariant(s))
}

func TestReconcilerOverpaymentClampsOutstanding(t *testing.T) {
	r := NewReconciler()
	s := newStudent("1000", "900")
	students := []*domain.Student{s}

	require.NoError(t, r.OnCreate(students, usdPayment(s.ID, "500", domain.PaymentCompleted)))
	assert.True(t, dec("1400").Equal(s.PaidAmount), "overpayment is kept on record")
	assert.True(t, s.OutstandingBalance.IsZero(), "outstanding never goes negative")
}

func TestReconcilerDeleteClampsPaidAtZero(t *testing.T) {
	r := NewReconciler()
	s := newStudent("1000", "100")
	students := []*domain.Student{s}

	// Deleting a payment larger than what is on record floors paid at zero
	// rather than driving it negative.
	require.NoError(t, r.OnDelete(students, usdPayment(s.ID, "250", domain.PaymentCompleted)))
	assert.True(t, s.PaidAmount.IsZero())
	assert.True(t, dec("1000").Equal(s.OutstandingBalance))
}

func TestReconcilerNonCompletedPaymentsAreNoOps(t *testing.T) {
	r := NewReconciler()
	s := newStudent("1000", "400")
	students := []*domain.Student{s}

	for _, status := range []domain.PaymentStatus{domain.PaymentPending, domain.PaymentFailed} {
		require.NoError(t, r.OnCreate(students, usdPayment(s.ID, "300", status)))
		require.NoError(t, r.OnDelete(students, usdPayment(s.ID, "300", status)))
	}
	assert.True(t, dec("400").Equal(s.PaidAmount))
	assert.True(t, dec("600").Equal(s.OutstandingBalance))
}

func TestReconcilerConvertsToUSDEquivalent(t *testing.T) {
	r := NewReconciler()
	s := newStudent("1000", "0")
	students := []*domain.Student{s}

	// ZAR 175 at 17.5 per USD lands as 10 on the USD-equivalent balance.
	p := usdPayment(s.ID, "175", domain.PaymentCompleted)
	p.Currency = currency.ZAR
	require.NoError(t, r.OnCreate(students, p))
	assert.True(t, dec("10").Equal(s.PaidAmount), "paid: %s", s.PaidAmount)
	assert.True(t, dec("990").Equal(s.OutstandingBalance))
}

func TestReconcilerMissingStudent(t *testing.T) {
	r := NewReconciler()
	students := []*domain.Student{newStudent("1000", "0")}

	err := r.OnCreate(students, usdPayment(uuid.New(), "300", domain.PaymentCompleted))
	assert.ErrorIs(t, err, domain.ErrStudentNotFound)
}

func TestReconcilerNegativeDeductionLowersPaid(t *testing.T) {
	r := NewReconciler()
	s := newStudent("1000", "400")
	students := []*domain.Student{s}

	// System-generated deduction records carry negative amounts; the create
	// path must not clamp them away.
	require.NoError(t, r.OnCreate(students, usdPayment(s.ID, "-150", domain.PaymentCompleted)))
	assert.True(t, dec("250").Equal(s.PaidAmount))
	assert.True(t, dec("750").Equal(s.OutstandingBalance))
}

func TestReconcilerUpdate(t *testing.T) {
	t.Run("amount edit applies the delta", func(t *testing.T) {
		r := NewReconciler()
		s := newStudent("1000", "400")
		students := []*domain.Student{s}

		oldP := usdPayment(s.ID, "300", domain.PaymentCompleted)
		newP := oldP
		newP.Amount = dec("450")

		require.NoError(t, r.OnUpdate(students, oldP, newP))
		assert.True(t, dec("550").Equal(s.PaidAmount))
		assert.True(t, dec("450").Equal(s.OutstandingBalance))
	})

	t.Run("completion transition applies the full amount", func(t *testing.T) {
		r := NewReconciler()
		s := newStudent("1000", "400")
		students := []*domain.Student{s}

		oldP := usdPayment(s.ID, "300", domain.PaymentPending)
		newP := oldP
		newP.Status = domain.PaymentCompleted

		require.NoError(t, r.OnUpdate(students, oldP, newP))
		assert.True(t, dec("700").Equal(s.PaidAmount))
	})

	t.Run("reverting completion reverses the full amount", func(t *testing.T) {
		r := NewReconciler()
		s := newStudent("1000", "700")
		students := []*domain.Student{s}

		oldP := usdPayment(s.ID, "300", domain.PaymentCompleted)
		newP := oldP
		newP.Status = domain.PaymentFailed

		require.NoError(t, r.OnUpdate(students, oldP, newP))
		assert.True(t, dec("400").Equal(s.PaidAmount))
		assert.True(t, dec("600").Equal(s.OutstandingBalance))
	})

	t.Run("reassignment moves the amount between students", func(t *testing.T) {
		r := NewReconciler()
		a := newStudent("1000", "300")
		b := newStudent("800", "0")
		students := []*domain.Student{a, b}

		oldP := usdPayment(a.ID, "300", domain.PaymentCompleted)
		newP := oldP
		newP.StudentID = b.ID

		require.NoError(t, r.OnUpdate(students, oldP, newP))
		assert.True(t, a.PaidAmount.IsZero())
		assert.True(t, dec("1000").Equal(a.OutstandingBalance))
		assert.True(t, dec("300").Equal(b.PaidAmount))
		assert.True(t, dec("500").Equal(b.OutstandingBalance))
	})

	t.Run("reassignment from an orphaned student still credits the new one", func(t *testing.T) {
		r := NewReconciler()
		b := newStudent("800", "0")
		students := []*domain.Student{b}

		oldP := usdPayment(uuid.New(), "300", domain.PaymentCompleted)
		newP := oldP
		newP.StudentID = b.ID

		err := r.OnUpdate(students, oldP, newP)
		assert.ErrorIs(t, err, domain.ErrStudentNotFound)
		assert.True(t, dec("300").Equal(b.PaidAmount), "the surviving side is still applied")
	})
}

func TestReconcilerConcurrentCreates(t *testing.T) {
	r := NewReconciler()
	s := newStudent("1000", "0")
	students := []*domain.Student{s}

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = r.OnCreate(students, usdPayment(s.ID, "10", domain.PaymentCompleted))
		}()
	}
	wg.Wait()

	assert.True(t, dec("500").Equal(s.PaidAmount), "paid: %s", s.PaidAmount)
	assert.True(t, dec("500").Equal(s.OutstandingBalance))
	assert.True(t, CheckInvariant(s))
}
