// Package expense exposes the expense HTTP endpoints.
package expense

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/farai/schoolledger/pkg/dto"
	dashboardsvc "github.com/farai/schoolledger/pkg/service/dashboard"
	expensesvc "github.com/farai/schoolledger/pkg/service/expense"
	"github.com/farai/schoolledger/webapi/common"
)

// Routes registers HTTP routes for expense operations.
func Routes(app *fiber.App, svc *expensesvc.Service, dashboardSvc *dashboardsvc.Service) {
	group := app.Group("/api/expenses")
	group.Get("/", List(svc))
	group.Post("/", Create(svc, dashboardSvc))
	group.Get("/:id", Get(svc))
	group.Put("/:id", Update(svc))
	group.Delete("/:id", Delete(svc))
}

// List returns all expenses, newest first.
func List(svc *expensesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		expenses, err := svc.ListExpenses(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list expenses", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Expenses fetched successfully", expenses)
	}
}

// Create records an expense. When the expense is tagged against a
// receipt-book allocation, the response also reports the category's
// remaining balance.
func Create(svc *expensesvc.Service, dashboardSvc *dashboardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := common.BindAndValidate[CreateRequest](c)
		if req == nil {
			return err
		}
		create := dto.ExpenseCreate{
			Description:        req.Description,
			Amount:             req.Amount,
			Currency:           req.Currency,
			Category:           req.Category,
			PaymentMethod:      req.PaymentMethod,
			AccountID:          req.AccountID,
			AllocationCategory: req.AllocationCategory,
		}
		if req.Date != nil {
			create.Date = *req.Date
		}
		created, err := svc.RecordExpense(c.Context(), create)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to record expense", err)
		}
		if created.AccountID != "" && created.AllocationCategory != "" {
			remaining, err := dashboardSvc.AccountBalance(c.Context(), created.AccountID, created.AllocationCategory)
			if err == nil {
				return common.SuccessResponseJSON(c, fiber.StatusCreated, "Expense recorded successfully", fiber.Map{
					"expense":          created,
					"remainingBalance": remaining,
				})
			}
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Expense recorded successfully", created)
	}
}

// Get returns one expense.
func Get(svc *expensesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid expense id", err, fiber.StatusBadRequest)
		}
		e, err := svc.GetExpense(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Expense not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Expense fetched successfully", e)
	}
}

// Update edits an expense.
func Update(svc *expensesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid expense id", err, fiber.StatusBadRequest)
		}
		req, err := common.BindAndValidate[UpdateRequest](c)
		if req == nil {
			return err
		}
		updated, err := svc.UpdateExpense(c.Context(), id, dto.ExpenseUpdate{
			Description:        req.Description,
			Amount:             req.Amount,
			Currency:           req.Currency,
			Category:           req.Category,
			Date:               req.Date,
			PaymentMethod:      req.PaymentMethod,
			AccountID:          req.AccountID,
			AllocationCategory: req.AllocationCategory,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update expense", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Expense updated successfully", updated)
	}
}

// Delete removes an expense.
func Delete(svc *expensesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid expense id", err, fiber.StatusBadRequest)
		}
		if err := svc.DeleteExpense(c.Context(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete expense", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Expense deleted successfully", nil)
	}
}
