package webapi

import (
	"strings"

	"github.com/finsighthq/finsight/pkg/domain"
	reportsvc "github.com/finsighthq/finsight/pkg/service/report"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ReportRoutes registers the reporting endpoints.
//
// Routes:
//   - GET /reports/pl    : Full P&L statement for a period.
//   - GET /reports/total : Filtered aggregation total.
func ReportRoutes(app *fiber.App, svc *reportsvc.Service) {
	app.Get("/reports/pl", GetPLReport(svc))
	app.Get("/reports/total", GetTotal(svc))
}

// GetPLReport builds a P&L statement.
// @Summary Build a P&L statement
// @Description Builds the full statement for the period: revenue, COGS, gross profit, operating expenses, operating income, other income and expenses, EBITDA and net income. Optional project scope and prior-period comparison.
// @Tags reports
// @Produce json
// @Param start query string true "Period start (YYYY-MM-DD)"
// @Param end query string true "Period end (YYYY-MM-DD, inclusive)"
// @Param project_id query string false "Scope to one project"
// @Param compare_previous query bool false "Attach the preceding equal-length period"
// @Param exclude_vat query bool false "Report amounts net of VAT"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails "Invalid query"
// @Router /reports/pl [get]
func GetPLReport(svc *reportsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parsePeriod(c)
		if err != nil {
			return err
		}
		q := reportsvc.PLQuery{
			Start:           start,
			End:             end,
			ComparePrevious: c.QueryBool("compare_previous"),
			ExcludeVAT:      c.QueryBool("exclude_vat"),
		}
		if raw := c.Query("project_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid project_id", err.Error())
			}
			q.ProjectID = &id
		}
		rep, err := svc.BuildPLReport(c.Context(), q)
		if err != nil {
			return ServiceErrorJSON(c, "Failed to build report", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Report built",
			Data:    rep,
		})
	}
}

// GetTotal aggregates effective attributions over a period.
// @Summary Aggregate a filtered total
// @Description Sums effective attributions over the period, optionally restricted by side, project, client name or category types. VAT can be excluded proportionally.
// @Tags reports
// @Produce json
// @Param start query string true "Period start (YYYY-MM-DD)"
// @Param end query string true "Period end (YYYY-MM-DD, inclusive)"
// @Param side query string false "credit or debit"
// @Param project_id query string false "Restrict to one project"
// @Param client query string false "Restrict to one client name"
// @Param types query string false "Comma-separated category types"
// @Param exclude_vat query bool false "Sum amounts net of VAT"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails "Invalid query"
// @Router /reports/total [get]
func GetTotal(svc *reportsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parsePeriod(c)
		if err != nil {
			return err
		}
		q := reportsvc.TotalQuery{
			Start:      start,
			End:        end,
			ClientName: c.Query("client"),
			ExcludeVAT: c.QueryBool("exclude_vat"),
		}
		switch side := c.Query("side"); side {
		case "":
		case string(domain.Credit), string(domain.Debit):
			q.Side = domain.Side(side)
		default:
			return ErrorResponseJSON(c, fiber.StatusBadRequest,
				"Invalid side", "side must be credit or debit")
		}
		if raw := c.Query("project_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid project_id", err.Error())
			}
			q.ProjectID = &id
		}
		if raw := c.Query("types"); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				ct := domain.CategoryType(strings.TrimSpace(part))
				if !domain.IsValidCategoryType(ct) {
					return ErrorResponseJSON(c, fiber.StatusBadRequest,
						"Invalid types", "unknown category type: "+string(ct))
				}
				q.Types = append(q.Types, ct)
			}
		}
		total, err := svc.Total(c.Context(), q)
		if err != nil {
			return ServiceErrorJSON(c, "Failed to aggregate total", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Total aggregated",
			Data:    fiber.Map{"total": total},
		})
	}
}
