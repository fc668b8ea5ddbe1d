package ledger

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farai/schoolledger/pkg/currency"
	"github.com/farai/schoolledger/pkg/domain"
)

// Reconciler keeps a student's PaidAmount and OutstandingBalance consistent
// with their payment history. It operates on in-memory student snapshots;
// the storage layer applies the same deltas atomically in SQL for persisted
// records.
//
// Student balances are USD-equivalent, so payment amounts are converted
// through the static rate table before they are applied.
//
// Updates to a given student are serialized with a per-student lock so two
// concurrent payment events against the same snapshot cannot interleave
// their read-modify-write.
type Reconciler struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewReconciler returns a Reconciler ready for use.
func NewReconciler() *Reconciler {
	return &Reconciler{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (r *Reconciler) lockFor(id uuid.UUID) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[id]
	if !ok {
		l = &sync.Mutex{}
		r.locks[id] = l
	}
	return l
}

// UpdateAction names the balance move a payment edit requires. Both the
// in-memory reconciler and the storage-backed payment service derive their
// update handling from ClassifyUpdate so the two paths cannot drift.
type UpdateAction int

const (
	// UpdateNone leaves balances untouched.
	UpdateNone UpdateAction = iota
	// UpdateMoveStudent reverses the old payment from its student and applies
	// the new payment to its (different) student.
	UpdateMoveStudent
	// UpdateApplyDelta applies the difference between the new and old
	// USD-equivalent amounts to the shared student.
	UpdateApplyDelta
	// UpdateReverseOld reverses the old payment; it is no longer completed.
	UpdateReverseOld
	// UpdateApplyNew applies the new payment; it just became completed.
	UpdateApplyNew
)

// ClassifyUpdate decides which balance move a payment edit requires.
func ClassifyUpdate(sameStudent, oldCompleted, newCompleted bool) UpdateAction {
	if !sameStudent {
		return UpdateMoveStudent
	}
	switch {
	case oldCompleted && newCompleted:
		return UpdateApplyDelta
	case oldCompleted:
		return UpdateReverseOld
	case newCompleted:
		return UpdateApplyNew
	default:
		return UpdateNone
	}
}

// findStudent locates a student snapshot by id.
func findStudent(students []*domain.Student, id uuid.UUID) (*domain.Student, error) {
	for _, s := range students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrStudentNotFound
}

// usdAmount converts a payment amount to its USD equivalent.
func usdAmount(amount decimal.Decimal, cur currency.Code) (decimal.Decimal, error) {
	return currency.ToUSD(amount, cur)
}

// applyDelta adds delta to the student's paid amount and recomputes the
// outstanding balance. When clampPaid is set the paid amount is floored at
// zero (the delete path); the create path deliberately does not clamp, so a
// system-generated negative deduction can pull the paid amount down.
func (r *Reconciler) applyDelta(s *domain.Student, delta decimal.Decimal, clampPaid bool) {
	l := r.lockFor(s.ID)
	l.Lock()
	defer l.Unlock()

	paid := s.PaidAmount.Add(delta)
	if clampPaid && paid.IsNegative() {
		paid = decimal.Zero
	}
	s.PaidAmount = paid

	outstanding := s.TotalFees.Sub(paid)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}
	s.OutstandingBalance = outstanding
}

// OnCreate applies a newly created payment to its student's balance.
// Payments that are not completed leave balances untouched. A missing
// student yields ErrStudentNotFound: the caller logs and continues, and the
// payment record persists regardless (a known partial-success mode, kept
// deliberately).
func (r *Reconciler) OnCreate(students []*domain.Student, p domain.Payment) error {
	if !p.Completed() {
		return nil
	}
	s, err := findStudent(students, p.StudentID)
	if err != nil {
		return err
	}
	delta, err := usdAmount(p.Amount, p.Currency)
	if err != nil {
		return err
	}
	r.applyDelta(s, delta, false)
	return nil
}

// OnUpdate adjusts balances for a payment edit. For a same-student edit the
// delta between the new and old amounts is applied. If the payment moved
// between students, the old amount is reversed from the old student and the
// new amount applied to the new one — an explicit decision; the system this
// replaces corrupted the old student's balance in that case. Status
// transitions in or out of completed apply or reverse the full amount.
func (r *Reconciler) OnUpdate(students []*domain.Student, oldP, newP domain.Payment) error {
	switch ClassifyUpdate(oldP.StudentID == newP.StudentID, oldP.Completed(), newP.Completed()) {
	case UpdateMoveStudent:
		// Reverse from the old student, apply to the new. Either side may
		// be missing independently; report the first miss after attempting
		// both so one orphaned reference doesn't block the other update.
		var firstErr error
		if err := r.OnDelete(students, oldP); err != nil {
			firstErr = err
		}
		if err := r.OnCreate(students, newP); err != nil && firstErr == nil {
			firstErr = err
		}
		return firstErr
	case UpdateApplyDelta:
		oldUSD, err := usdAmount(oldP.Amount, oldP.Currency)
		if err != nil {
			return err
		}
		newUSD, err := usdAmount(newP.Amount, newP.Currency)
		if err != nil {
			return err
		}
		s, err := findStudent(students, newP.StudentID)
		if err != nil {
			return err
		}
		r.applyDelta(s, newUSD.Sub(oldUSD), false)
		return nil
	case UpdateReverseOld:
		return r.OnDelete(students, oldP)
	case UpdateApplyNew:
		return r.OnCreate(students, newP)
	default:
		return nil
	}
}

// OnDelete reverses a payment's full amount from its student's balance. The
// paid amount is floored at zero.
func (r *Reconciler) OnDelete(students []*domain.Student, p domain.Payment) error {
	if !p.Completed() {
		return nil
	}
	s, err := findStudent(students, p.StudentID)
	if err != nil {
		return err
	}
	amount, err := usdAmount(p.Amount, p.Currency)
	if err != nil {
		return err
	}
	r.applyDelta(s, amount.Neg(), true)
	return nil
}

// CheckInvariant verifies outstandingBalance == max(0, totalFees-paidAmount)
// for a student at rest. Used by validation and tests.
func CheckInvariant(s *domain.Student) bool {
	want := s.TotalFees.Sub(s.PaidAmount)
	if want.IsNegative() {
		want = decimal.Zero
	}
	return s.OutstandingBalance.Equal(want)
}
