package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/farai/schoolledger/pkg/currency"
	"github.com/farai/schoolledger/pkg/domain"
)

var oneHundred = decimal.NewFromInt(100)

// allocationSumTolerance is the relative tolerance for the stored-allocation
// integrity check.
var allocationSumTolerance = decimal.RequireFromString("0.000001")

// GenerateAllocations splits amount across the receipt book's percentage
// table, in declaration order. Books with no configured split (and unknown
// account ids) yield an empty list: the amount stays unsplit at account
// level. Ceiling enforcement is a caller-side policy and does not happen
// here.
func GenerateAllocations(amount decimal.Decimal, accountID string) []domain.Allocation {
	account, ok := LookupAccount(accountID)
	if !ok || !account.HasSplit() {
		return nil
	}
	out := make([]domain.Allocation, 0, len(account.Split))
	for _, share := range account.Split {
		out = append(out, domain.Allocation{
			Category:   share.Category,
			Percentage: share.Percent,
			Amount:     amount.Mul(decimal.NewFromInt(share.Percent)).Div(oneHundred),
		})
	}
	return out
}

// AvailableBalance derives how much of a budget category is still unspent:
// the category's share of every completed payment belonging to the account,
// minus every expense tagged against the category, floored at zero.
//
// Payments recorded before allocation tracking existed carry no stored
// allocations; their share is computed on the fly from the current
// percentage table. Expense matching is exact on account id and category —
// no legacy-alias fallback applies to expenses.
func AvailableBalance(
	accountID, category string,
	cur currency.Code,
	payments []domain.Payment,
	expenses []domain.Expense,
) decimal.Decimal {
	account, ok := LookupAccount(accountID)
	if !ok {
		return decimal.Zero
	}
	percent, inSplit := account.Percent(category)

	totalAllocated := decimal.Zero
	for _, p := range payments {
		if !p.Completed() || p.Currency != cur || !account.MatchesPayment(p) {
			continue
		}
		if stored, ok := p.AllocationFor(category); ok {
			totalAllocated = totalAllocated.Add(stored)
			continue
		}
		if !inSplit {
			// Category outside the book's table contributes nothing,
			// regardless of payment volume.
			continue
		}
		share := p.Amount.Mul(decimal.NewFromInt(percent)).Div(oneHundred)
		totalAllocated = totalAllocated.Add(share)
	}

	totalSpent := decimal.Zero
	for _, e := range expenses {
		if e.AccountID != accountID || e.AllocationCategory != category || e.Currency != cur {
			continue
		}
		totalSpent = totalSpent.Add(e.Amount)
	}

	balance := totalAllocated.Sub(totalSpent)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// CheckAllocations verifies that a payment's stored allocation amounts sum
// to the payment amount within relative tolerance. It returns
// ErrAllocationSumMismatch for surfacing during data validation; payments
// without stored allocations pass trivially. Production write paths stay
// permissive and must not turn this into a hard failure.
func CheckAllocations(p domain.Payment) error {
	if len(p.Allocations) == 0 {
		return nil
	}
	sum := decimal.Zero
	for _, a := range p.Allocations {
		sum = sum.Add(a.Amount)
	}
	diff := sum.Sub(p.Amount).Abs()
	limit := p.Amount.Abs().Mul(allocationSumTolerance)
	if diff.GreaterThan(limit) {
		return fmt.Errorf("%w: payment %s has %s allocated against amount %s",
			domain.ErrAllocationSumMismatch, p.ID, sum, p.Amount)
	}
	return nil
}
