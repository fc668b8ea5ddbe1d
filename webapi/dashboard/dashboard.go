// Package dashboard exposes the financial summary HTTP endpoint.
package dashboard

import (
	"time"

	"github.com/gofiber/fiber/v2"

	dashboardsvc "github.com/farai/schoolledger/pkg/service/dashboard"
	"github.com/farai/schoolledger/webapi/common"
)

// Routes registers HTTP routes for the dashboard views.
func Routes(app *fiber.App, svc *dashboardsvc.Service) {
	group := app.Group("/api/dashboard")
	group.Get("/summary", Summary(svc))
}

// Summary returns the financial summary. An optional ?date=YYYY-MM-DD query
// parameter anchors the daily and monthly windows on a historical date.
func Summary(svc *dashboardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref := time.Now()
		if raw := c.Query("date"); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid date, expected YYYY-MM-DD", err, fiber.StatusBadRequest)
			}
			ref = parsed
		}
		s, err := svc.Summary(c.Context(), ref)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to compute summary", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Summary computed successfully", s)
	}
}
