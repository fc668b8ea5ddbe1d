// Package app assembles the services and the Fiber application.
package app

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/farai/schoolledger/infra/initializer"
	dashboardsvc "github.com/farai/schoolledger/pkg/service/dashboard"
	expensesvc "github.com/farai/schoolledger/pkg/service/expense"
	paymentsvc "github.com/farai/schoolledger/pkg/service/payment"
	studentsvc "github.com/farai/schoolledger/pkg/service/student"
	"github.com/farai/schoolledger/webapi/accountbook"
	"github.com/farai/schoolledger/webapi/common"
	dashboardapi "github.com/farai/schoolledger/webapi/dashboard"
	expenseapi "github.com/farai/schoolledger/webapi/expense"
	paymentapi "github.com/farai/schoolledger/webapi/payment"
	studentapi "github.com/farai/schoolledger/webapi/student"
)

// New builds all services, registers routes, and returns the Fiber app.
func New(deps *initializer.Deps) *fiber.App {
	studentSvc := studentsvc.NewService(deps.Students, deps.Logger)
	paymentSvc := paymentsvc.NewService(deps.Payments, deps.Students, deps.Logger)
	expenseSvc := expensesvc.NewService(deps.Expenses, paymentSvc, deps.Logger)
	dashboardSvc := dashboardsvc.NewService(deps.Students, deps.Payments, deps.Expenses, deps.Logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        deps.Config.RateLimit.MaxRequests,
		Expiration: deps.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests",
				errors.New("rate limit exceeded"), fiber.StatusTooManyRequests)
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("School ledger is up")
	})

	studentapi.Routes(app, studentSvc)
	paymentapi.Routes(app, paymentSvc)
	expenseapi.Routes(app, expenseSvc, dashboardSvc)
	dashboardapi.Routes(app, dashboardSvc)
	accountbook.Routes(app, dashboardSvc)
	return app
}
