// Package accountbook exposes the receipt-book HTTP endpoints: the account
// configuration, allocation previews, and category balances.
package accountbook

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/farai/schoolledger/pkg/ledger"
	dashboardsvc "github.com/farai/schoolledger/pkg/service/dashboard"
	"github.com/farai/schoolledger/webapi/common"
)

// Routes registers HTTP routes for receipt-book operations.
func Routes(app *fiber.App, svc *dashboardsvc.Service) {
	group := app.Group("/api/accounts")
	group.Get("/", List())
	group.Get("/:id/allocations", AllocationPreview(svc))
	group.Get("/:id/balance/:category", CategoryBalance(svc))
}

// accountView is the API shape of one receipt book.
type accountView struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Currency string                 `json:"currency"`
	Ceiling  decimal.Decimal        `json:"ceiling"`
	Split    []ledger.CategoryShare `json:"split,omitempty"`
}

// List returns the configured receipt books.
func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		accounts := ledger.Accounts()
		views := make([]accountView, 0, len(accounts))
		for _, a := range accounts {
			views = append(views, accountView{
				ID:       a.ID,
				Name:     a.Name,
				Currency: string(a.Currency),
				Ceiling:  a.Ceiling,
				Split:    a.Split,
			})
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched successfully", views)
	}
}

// AllocationPreview shows how ?amount= would split across the book's
// categories, without recording anything.
func AllocationPreview(svc *dashboardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		amount, err := decimal.NewFromString(c.Query("amount"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}
		allocations, err := svc.AllocationPreview(c.Params("id"), amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to preview allocations", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Allocations previewed successfully", allocations)
	}
}

// CategoryBalance returns the unspent balance of one allocation category, in
// the book's own currency.
func CategoryBalance(svc *dashboardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		balance, err := svc.AccountBalance(c.Context(), c.Params("id"), c.Params("category"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to compute balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance computed successfully", fiber.Map{
			"accountId": c.Params("id"),
			"category":  c.Params("category"),
			"balance":   balance,
		})
	}
}
