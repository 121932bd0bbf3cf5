// Package kpi derives dashboards, per-project and per-client summaries and
// trend series from the aggregation engine. It adds no aggregation
// semantics of its own.
package kpi

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/finsighthq/finsight/pkg/dto"
	"github.com/finsighthq/finsight/pkg/repository"
	"github.com/finsighthq/finsight/pkg/service/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Service computes KPI views on top of the report engine.
type Service struct {
	uow     repository.UnitOfWork
	reports *report.Service
	logger  *slog.Logger
}

// New creates a KPI Service.
func New(uow repository.UnitOfWork, reports *report.Service, logger *slog.Logger) *Service {
	return &Service{uow: uow, reports: reports, logger: logger}
}

// Dashboard returns the organization-wide KPI snapshot for a period.
func (s *Service) Dashboard(ctx context.Context, start, end time.Time) (*dto.DashboardRead, error) {
	rep, err := s.reports.BuildPLReport(ctx, report.PLQuery{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	expenses := rep.COGS.Add(rep.OperatingExpenses).Add(rep.OtherExpenses)
	return &dto.DashboardRead{
		StartDate:       rep.StartDate,
		EndDate:         rep.EndDate,
		Currency:        rep.Currency,
		Revenue:         rep.Revenue,
		Expenses:        expenses,
		GrossProfit:     rep.GrossProfit,
		GrossMargin:     rep.GrossMargin,
		OperatingIncome: rep.OperatingIncome,
		OperatingMargin: rep.OperatingMargin,
		NetIncome:       rep.NetIncome,
		NetMargin:       rep.NetMargin,
		EBITDA:          rep.EBITDA,
		EBITDAFromNet:   rep.NetIncome.Add(rep.Depreciation).Add(rep.Interest).Add(rep.Taxes),
	}, nil
}

// ProjectSummaries returns one KPI row per active project.
func (s *Service) ProjectSummaries(ctx context.Context, start, end time.Time) ([]dto.ProjectSummary, error) {
	projects, err := s.uow.Projects().List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		revenue, err := s.reports.Total(ctx, report.TotalQuery{
			Start: start, End: end, Side: domain.Credit, ProjectID: &p.ID,
		})
		if err != nil {
			return nil, err
		}
		costs, err := s.reports.Total(ctx, report.TotalQuery{
			Start: start, End: end, Side: domain.Debit, ProjectID: &p.ID,
		})
		if err != nil {
			return nil, err
		}

		row := dto.ProjectSummary{
			ProjectID:       p.ID,
			Code:            p.Code,
			Name:            p.Name,
			ClientName:      p.ClientName,
			Revenue:         revenue,
			Costs:           costs,
			Net:             revenue.Sub(costs),
			Margin:          ratioPct(revenue.Sub(costs), revenue),
			Budget:          p.Budget,
			ContractValue:   p.ContractValue,
			MonthlyBurnRate: monthlyBurn(costs, start, end),
		}
		if p.Budget != nil {
			row.BudgetConsumed = ratioPct(costs, *p.Budget)
		}
		if p.ContractValue != nil {
			row.ContractConsumed = ratioPct(revenue, *p.ContractValue)
		}
		out = append(out, row)
	}
	return out, nil
}

// ClientSummaries returns one KPI row per distinct client. Clients are
// enumerated from allocations in the period plus the client names of
// projects directly linked to unallocated transactions.
func (s *Service) ClientSummaries(ctx context.Context, start, end time.Time) ([]dto.ClientSummary, error) {
	names, err := s.clientNames(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientSummary, 0, len(names))
	for _, name := range names {
		revenue, err := s.reports.Total(ctx, report.TotalQuery{
			Start: start, End: end, Side: domain.Credit, ClientName: name,
		})
		if err != nil {
			return nil, err
		}
		costs, err := s.reports.Total(ctx, report.TotalQuery{
			Start: start, End: end, Side: domain.Debit, ClientName: name,
		})
		if err != nil {
			return nil, err
		}
		net := revenue.Sub(costs)
		out = append(out, dto.ClientSummary{
			ClientName: name,
			Revenue:    revenue,
			Costs:      costs,
			Net:        net,
			Margin:     ratioPct(net, revenue),
		})
	}
	return out, nil
}

func (s *Service) clientNames(ctx context.Context, start, end time.Time) ([]string, error) {
	txs, err := s.uow.Transactions().ListInPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	txIDs := make([]uuid.UUID, 0, len(txs))
	for _, tx := range txs {
		txIDs = append(txIDs, tx.ID)
	}
	allocations, err := s.uow.Allocations().ListForTransactions(ctx, txIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, allocs := range allocations {
		for _, a := range allocs {
			if a.ClientName != "" {
				seen[a.ClientName] = true
			}
		}
	}

	projIDs := make([]uuid.UUID, 0)
	for _, tx := range txs {
		if len(allocations[tx.ID]) == 0 && tx.ProjectID != nil {
			projIDs = append(projIDs, *tx.ProjectID)
		}
	}
	projects, err := s.uow.Projects().GetByIDs(ctx, projIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.ClientName != "" {
			seen[p.ClientName] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ratioPct returns 100*part/whole rounded to 2 decimals, 0 when whole is
// zero or negative.
func ratioPct(part, whole decimal.Decimal) decimal.Decimal {
	if whole.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

// monthlyBurn normalizes period costs to a 30.44-day month.
func monthlyBurn(costs decimal.Decimal, start, end time.Time) decimal.Decimal {
	days := decimal.NewFromFloat(end.Sub(start).Hours()/24 + 1)
	if days.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	months := days.Div(decimal.NewFromFloat(30.44))
	return costs.Div(months).Round(2)
}
