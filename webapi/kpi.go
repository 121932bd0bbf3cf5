package webapi

import (
	kpisvc "github.com/finsighthq/finsight/pkg/service/kpi"
	"github.com/gofiber/fiber/v2"
)

// KPIRoutes registers the KPI and trend endpoints.
//
// Routes:
//   - GET /kpi/dashboard : Organization-wide KPI snapshot.
//   - GET /kpi/projects  : Per-project summaries.
//   - GET /kpi/clients   : Per-client summaries.
//   - GET /kpi/trends    : Period-over-period metric series.
func KPIRoutes(app *fiber.App, svc *kpisvc.Service) {
	app.Get("/kpi/dashboard", GetDashboard(svc))
	app.Get("/kpi/projects", GetProjectSummaries(svc))
	app.Get("/kpi/clients", GetClientSummaries(svc))
	app.Get("/kpi/trends", GetTrend(svc))
}

// GetDashboard returns the organization-wide KPI snapshot.
// @Summary KPI dashboard
// @Tags kpi
// @Produce json
// @Param start query string true "Period start (YYYY-MM-DD)"
// @Param end query string true "Period end (YYYY-MM-DD, inclusive)"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails "Invalid query"
// @Router /kpi/dashboard [get]
func GetDashboard(svc *kpisvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parsePeriod(c)
		if err != nil {
			return err
		}
		dashboard, err := svc.Dashboard(c.Context(), start, end)
		if err != nil {
			return ServiceErrorJSON(c, "Failed to build dashboard", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Dashboard built",
			Data:    dashboard,
		})
	}
}

// GetProjectSummaries returns per-project KPI rows.
// @Summary Per-project KPI summaries
// @Tags kpi
// @Produce json
// @Param start query string true "Period start (YYYY-MM-DD)"
// @Param end query string true "Period end (YYYY-MM-DD, inclusive)"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails "Invalid query"
// @Router /kpi/projects [get]
func GetProjectSummaries(svc *kpisvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parsePeriod(c)
		if err != nil {
			return err
		}
		summaries, err := svc.ProjectSummaries(c.Context(), start, end)
		if err != nil {
			return ServiceErrorJSON(c, "Failed to summarize projects", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Projects summarized",
			Data:    summaries,
		})
	}
}

// GetClientSummaries returns per-client KPI rows.
// @Summary Per-client KPI summaries
// @Tags kpi
// @Produce json
// @Param start query string true "Period start (YYYY-MM-DD)"
// @Param end query string true "Period end (YYYY-MM-DD, inclusive)"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails "Invalid query"
// @Router /kpi/clients [get]
func GetClientSummaries(svc *kpisvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parsePeriod(c)
		if err != nil {
			return err
		}
		summaries, err := svc.ClientSummaries(c.Context(), start, end)
		if err != nil {
			return ServiceErrorJSON(c, "Failed to summarize clients", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Clients summarized",
			Data:    summaries,
		})
	}
}

// GetTrend returns a period-over-period metric series.
// @Summary Metric trend series
// @Description Builds a monthly, quarterly or yearly series of one statement metric with a direction and compound growth rate.
// @Tags kpi
// @Produce json
// @Param start query string true "Period start (YYYY-MM-DD)"
// @Param end query string true "Period end (YYYY-MM-DD, inclusive)"
// @Param interval query string false "monthly, quarterly or yearly (default monthly)"
// @Param metric query string false "revenue, net_income, gross_profit, operating_income or ebitda"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails "Invalid query"
// @Router /kpi/trends [get]
func GetTrend(svc *kpisvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parsePeriod(c)
		if err != nil {
			return err
		}
		interval := kpisvc.Monthly
		switch raw := c.Query("interval"); raw {
		case "", string(kpisvc.Monthly):
		case string(kpisvc.Quarterly):
			interval = kpisvc.Quarterly
		case string(kpisvc.Yearly):
			interval = kpisvc.Yearly
		default:
			return ErrorResponseJSON(c, fiber.StatusBadRequest,
				"Invalid interval", "interval must be monthly, quarterly or yearly")
		}
		series, err := svc.Trend(c.Context(), start, end, interval, c.Query("metric"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Failed to build trend", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Trend built",
			Data:    series,
		})
	}
}
