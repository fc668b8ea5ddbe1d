// Package summary folds payment, expense, and student collections into the
// time-windowed revenue figures the dashboards show. Everything is
// recomputed from source records on every read; nothing here is cached or
// persisted.
package summary

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farai/schoolledger/pkg/currency"
	"github.com/farai/schoolledger/pkg/domain"
)

// recentPaymentsLimit caps the dashboard's recent-payments list.
const recentPaymentsLimit = 5

// Breakdown holds one figure per currency, summed independently with no
// cross-currency mixing.
type Breakdown struct {
	USD decimal.Decimal `json:"USD"`
	ZAR decimal.Decimal `json:"ZAR"`
	ZIG decimal.Decimal `json:"ZiG"`
}

func zeroBreakdown() Breakdown {
	return Breakdown{USD: decimal.Zero, ZAR: decimal.Zero, ZIG: decimal.Zero}
}

func (b *Breakdown) add(cur currency.Code, amount decimal.Decimal) {
	switch cur {
	case currency.USD:
		b.USD = b.USD.Add(amount)
	case currency.ZAR:
		b.ZAR = b.ZAR.Add(amount)
	case currency.ZIG:
		b.ZIG = b.ZIG.Add(amount)
	}
}

// Get returns the figure for one currency.
func (b Breakdown) Get(cur currency.Code) decimal.Decimal {
	switch cur {
	case currency.USD:
		return b.USD
	case currency.ZAR:
		return b.ZAR
	case currency.ZIG:
		return b.ZIG
	default:
		return decimal.Zero
	}
}

// Summary is the full dashboard read model. The headline revenue figures
// are USD-equivalent via the static rate table; the Breakdown maps keep each
// currency separate.
type Summary struct {
	TotalRevenue   decimal.Decimal  `json:"totalRevenue"`
	MonthlyRevenue decimal.Decimal  `json:"monthlyRevenue"`
	DailyRevenue   decimal.Decimal  `json:"dailyRevenue"`
	Outstanding    decimal.Decimal  `json:"outstandingAmount"`
	TotalStudents  int              `json:"totalStudents"`
	ActiveStudents int              `json:"activeStudents"`
	RecentPayments []domain.Payment `json:"recentPayments"`

	TotalRevenueByCurrency   Breakdown `json:"totalRevenueByCurrency"`
	MonthlyRevenueByCurrency Breakdown `json:"monthlyRevenueByCurrency"`
	DailyRevenueByCurrency   Breakdown `json:"dailyRevenueByCurrency"`

	TotalExpensesByCurrency   Breakdown `json:"totalExpensesByCurrency"`
	MonthlyExpensesByCurrency Breakdown `json:"monthlyExpensesByCurrency"`
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// Calculate folds the snapshot collections into a Summary. The reference
// date anchors the daily and monthly windows, which is what lets a dashboard
// view any historical date as "today"; callers wanting the present pass
// time.Now(). Only completed payments contribute to revenue.
func Calculate(
	students []domain.Student,
	payments []domain.Payment,
	expenses []domain.Expense,
	ref time.Time,
) (Summary, error) {
	s := Summary{
		TotalRevenue:              decimal.Zero,
		MonthlyRevenue:            decimal.Zero,
		DailyRevenue:              decimal.Zero,
		Outstanding:               decimal.Zero,
		RecentPayments:            []domain.Payment{},
		TotalRevenueByCurrency:    zeroBreakdown(),
		MonthlyRevenueByCurrency:  zeroBreakdown(),
		DailyRevenueByCurrency:    zeroBreakdown(),
		TotalExpensesByCurrency:   zeroBreakdown(),
		MonthlyExpensesByCurrency: zeroBreakdown(),
	}

	completed := make([]domain.Payment, 0, len(payments))
	for _, p := range payments {
		if !p.Completed() {
			continue
		}
		completed = append(completed, p)

		usd, err := currency.ToUSD(p.Amount, p.Currency)
		if err != nil {
			return Summary{}, err
		}

		s.TotalRevenue = s.TotalRevenue.Add(usd)
		s.TotalRevenueByCurrency.add(p.Currency, p.Amount)

		if sameMonth(p.PaymentDate, ref) {
			s.MonthlyRevenue = s.MonthlyRevenue.Add(usd)
			s.MonthlyRevenueByCurrency.add(p.Currency, p.Amount)
		}
		if sameDay(p.PaymentDate, ref) {
			s.DailyRevenue = s.DailyRevenue.Add(usd)
			s.DailyRevenueByCurrency.add(p.Currency, p.Amount)
		}
	}

	for _, e := range expenses {
		s.TotalExpensesByCurrency.add(e.Currency, e.Amount)
		if sameMonth(e.Date, ref) {
			s.MonthlyExpensesByCurrency.add(e.Currency, e.Amount)
		}
	}

	for _, st := range students {
		s.Outstanding = s.Outstanding.Add(st.OutstandingBalance)
		if st.Status == domain.StudentActive {
			s.ActiveStudents++
		}
	}
	s.TotalStudents = len(students)

	// Most recent first; the stable sort keeps insertion order for
	// payments sharing a date.
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].PaymentDate.After(completed[j].PaymentDate)
	})
	if len(completed) > recentPaymentsLimit {
		completed = completed[:recentPaymentsLimit]
	}
	s.RecentPayments = completed

	return s, nil
}
