// Package ledger implements the school's payment-allocation and
// balance-reconciliation calculations: splitting receipts into budget
// categories per receipt book, deriving category balances from payment and
// expense history, and keeping each student's billing snapshot consistent
// with their payments.
//
// All calculations are pure functions over snapshots of the payment,
// expense, and student collections; persistence belongs to the storage
// layer.
package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/farai/schoolledger/pkg/currency"
	"github.com/farai/schoolledger/pkg/domain"
)

// CategoryShare is one row of a receipt book's percentage table.
type CategoryShare struct {
	Category string `json:"category"`
	Percent  int64  `json:"percent"`
}

// Account is a receipt book: a named budget bucket with a fixed currency
// and an optional percentage-based category split. This is static, versioned
// configuration owned by the engine, not mutable state.
type Account struct {
	ID       string
	Name     string
	Currency currency.Code

	// Ceiling is the caller-side maximum payment amount for this book.
	// Zero means no ceiling. The allocation engine itself never enforces
	// it; that policy belongs to the payment service.
	Ceiling decimal.Decimal

	// Split lists the category percentages in declaration order. The
	// percentages of a configured book sum to 100. Empty for plain books
	// whose payments stay unsplit at account level.
	Split []CategoryShare

	// LegacyAliases are older account ids that used to refer to this book
	// before the receipt books were renumbered. Payments recorded under an
	// alias still belong to this book.
	LegacyAliases []string

	// Keyword identifies this book in free-text payment descriptions. Used
	// only as a last-resort match for records that predate account ids.
	Keyword string
}

// The canonical receipt books. The 406/408/405 percentage tables and the
// legacy renumbering (tuition 405->406, projects 406->408, nostro 408->405)
// are reproduced exactly from the bursar's configuration.
var accounts = []Account{
	{
		ID:       "406",
		Name:     "Tuition Receipt Book",
		Currency: currency.ZAR,
		Ceiling:  decimal.NewFromInt(1000),
		Split: []CategoryShare{
			{Category: "building", Percent: 30},
			{Category: "tuition", Percent: 20},
			{Category: "gpf", Percent: 10},
			{Category: "sports", Percent: 10},
			{Category: "ra", Percent: 10},
			{Category: "nash_bspz", Percent: 10},
			{Category: "textbooks", Percent: 5},
			{Category: "practical_fee", Percent: 5},
		},
		LegacyAliases: []string{"405"},
		Keyword:       "tuition",
	},
	{
		ID:       "408",
		Name:     "Projects Receipt Book",
		Currency: currency.ZAR,
		Ceiling:  decimal.NewFromInt(300),
		Split: []CategoryShare{
			{Category: "salaries", Percent: 50},
			{Category: "projects", Percent: 30},
			{Category: "practical_equipment", Percent: 20},
		},
		LegacyAliases: []string{"406"},
		Keyword:       "project",
	},
	{
		ID:       "405",
		Name:     "Nostro",
		Currency: currency.USD,
		Ceiling:  decimal.NewFromInt(70),
		// Nostro uses the same split as the tuition book.
		Split: []CategoryShare{
			{Category: "building", Percent: 30},
			{Category: "tuition", Percent: 20},
			{Category: "gpf", Percent: 10},
			{Category: "sports", Percent: 10},
			{Category: "ra", Percent: 10},
			{Category: "nash_bspz", Percent: 10},
			{Category: "textbooks", Percent: 5},
			{Category: "practical_fee", Percent: 5},
		},
		LegacyAliases: []string{"408"},
		Keyword:       "nostro",
	},
	{
		ID:       "402",
		Name:     "Account 402",
		Currency: currency.ZIG,
	},
	{
		ID:       "401",
		Name:     "USD SiG Account",
		Currency: currency.USD,
	},
}

// Accounts returns the configured receipt books in declaration order.
func Accounts() []Account {
	out := make([]Account, len(accounts))
	copy(out, accounts)
	return out
}

// LookupAccount finds a receipt book by its current id.
func LookupAccount(id string) (Account, bool) {
	for _, a := range accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}

// Percent returns the configured percentage for category, or false if the
// category is not part of this book's split.
func (a Account) Percent(category string) (int64, bool) {
	for _, s := range a.Split {
		if s.Category == category {
			return s.Percent, true
		}
	}
	return 0, false
}

// HasSplit reports whether this book splits payments into categories.
func (a Account) HasSplit() bool { return len(a.Split) > 0 }

// MatchesPayment reports whether a payment belongs to this receipt book.
// Three identifier schemes are tolerated for historical records:
//
//  1. the payment's account id equals the book's current id;
//  2. the payment's account id equals a documented legacy alias, from
//     before the books were renumbered;
//  3. last resort: the free-text description contains the book's keyword
//     or full name, for records that predate account ids entirely.
func (a Account) MatchesPayment(p domain.Payment) bool {
	if p.AccountID == a.ID {
		return true
	}
	for _, alias := range a.LegacyAliases {
		if p.AccountID == alias {
			return true
		}
	}
	// Description-keyword fallback.
	desc := strings.ToLower(p.Description)
	if a.Keyword != "" && strings.Contains(desc, a.Keyword) {
		return true
	}
	return strings.Contains(p.Description, a.Name)
}
