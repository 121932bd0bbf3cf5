// Package app wires configuration, infrastructure and services into one
// application object consumed by the web layer.
package app

import (
	"log/slog"

	"github.com/finsighthq/finsight/pkg/config"
	"github.com/finsighthq/finsight/pkg/repository"
	"github.com/finsighthq/finsight/pkg/service/allocation"
	"github.com/finsighthq/finsight/pkg/service/category"
	"github.com/finsighthq/finsight/pkg/service/kpi"
	"github.com/finsighthq/finsight/pkg/service/project"
	"github.com/finsighthq/finsight/pkg/service/report"
	"github.com/finsighthq/finsight/pkg/service/transaction"
)

// Deps contains the externally constructed dependencies of the application.
type Deps struct {
	Uow    repository.UnitOfWork
	Logger *slog.Logger
}

// App aggregates the services behind the HTTP API.
type App struct {
	Deps   *Deps
	Config *config.App

	AllocationService  *allocation.Service
	ReportService      *report.Service
	KPIService         *kpi.Service
	TransactionService *transaction.Service
	ProjectService     *project.Service
	CategoryService    *category.Service
}

// New builds the service graph on top of deps.
func New(deps *Deps, cfg *config.App) *App {
	a := &App{
		Deps:   deps,
		Config: cfg,
	}
	a.AllocationService = allocation.New(deps.Uow, deps.Logger)
	a.ReportService = report.New(deps.Uow, cfg.Report.Currency, deps.Logger)
	a.KPIService = kpi.New(deps.Uow, a.ReportService, deps.Logger)
	a.TransactionService = transaction.New(deps.Uow, deps.Logger)
	a.ProjectService = project.New(deps.Uow, deps.Logger)
	a.CategoryService = category.New(deps.Uow, deps.Logger)
	return a
}
