// Package payment exposes the payment HTTP endpoints.
package payment

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/farai/schoolledger/pkg/currency"
	"github.com/farai/schoolledger/pkg/dto"
	paymentsvc "github.com/farai/schoolledger/pkg/service/payment"
	"github.com/farai/schoolledger/webapi/common"
)

// Routes registers HTTP routes for payment operations.
func Routes(app *fiber.App, svc *paymentsvc.Service) {
	group := app.Group("/api/payments")
	group.Get("/", List(svc))
	group.Post("/", Create(svc))
	group.Post("/deductions", RecordDeduction(svc))
	group.Get("/daily/today", ListToday(svc))
	group.Get("/student/:studentId", ListByStudent(svc))
	group.Get("/:id", Get(svc))
	group.Put("/:id", Update(svc))
	group.Delete("/:id", Delete(svc))
}

// List returns all payments, newest first.
func List(svc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payments, err := svc.ListPayments(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list payments", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payments fetched successfully", payments)
	}
}

// ListToday returns the payments dated today.
func ListToday(svc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payments, err := svc.ListTodaysPayments(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list payments", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payments fetched successfully", payments)
	}
}

// ListByStudent returns one student's payments, newest first.
func ListByStudent(svc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		studentID, err := uuid.Parse(c.Params("studentId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid student id", err, fiber.StatusBadRequest)
		}
		payments, err := svc.ListStudentPayments(c.Context(), studentID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list payments", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payments fetched successfully", payments)
	}
}

// Create records a payment and updates the student's balance.
func Create(svc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := common.BindAndValidate[CreateRequest](c)
		if req == nil {
			return err
		}
		create := dto.PaymentCreate{
			StudentID:     req.StudentID,
			StudentName:   req.StudentName,
			Amount:        req.Amount,
			Currency:      req.Currency,
			PaymentMethod: req.PaymentMethod,
			Description:   req.Description,
			InvoiceNumber: req.InvoiceNumber,
			Status:        req.Status,
			AccountID:     req.AccountID,
		}
		if req.PaymentDate != nil {
			create.PaymentDate = *req.PaymentDate
		}
		created, err := svc.CreatePayment(c.Context(), create)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to record payment", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Payment recorded successfully", created)
	}
}

// RecordDeduction records a system-generated negative payment.
func RecordDeduction(svc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := common.BindAndValidate[DeductionRequest](c)
		if req == nil {
			return err
		}
		created, err := svc.RecordDeduction(c.Context(), req.Amount, currency.Code(req.Currency), req.Description)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to record deduction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Deduction recorded successfully", created)
	}
}

// Get returns one payment.
func Get(svc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid payment id", err, fiber.StatusBadRequest)
		}
		p, err := svc.GetPayment(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Payment not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payment fetched successfully", p)
	}
}

// Update edits a payment and reconciles the affected balances.
func Update(svc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid payment id", err, fiber.StatusBadRequest)
		}
		req, err := common.BindAndValidate[UpdateRequest](c)
		if req == nil {
			return err
		}
		updated, err := svc.UpdatePayment(c.Context(), id, dto.PaymentUpdate{
			StudentID:     req.StudentID,
			Amount:        req.Amount,
			Currency:      req.Currency,
			PaymentMethod: req.PaymentMethod,
			PaymentDate:   req.PaymentDate,
			Description:   req.Description,
			Status:        req.Status,
			AccountID:     req.AccountID,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update payment", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payment updated successfully", updated)
	}
}

// Delete removes a payment and reverses its balance effect.
func Delete(svc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid payment id", err, fiber.StatusBadRequest)
		}
		if err := svc.DeletePayment(c.Context(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete payment", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payment deleted successfully", nil)
	}
}
