package kpi

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/finsighthq/finsight/internal/fixtures"
	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/finsighthq/finsight/pkg/service/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	q1Start = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	q1End   = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type env struct {
	store *fixtures.Store
	svc   *Service
	cats  map[domain.CategoryType]domain.Category
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := fixtures.NewStore()
	logger := slog.Default()
	reports := report.New(store.UoW(), "EUR", logger)
	cats := map[domain.CategoryType]domain.Category{
		domain.TypeRevenue:      store.AddCategory(domain.Category{Name: "Sales", Type: domain.TypeRevenue, Active: true}),
		domain.TypeCOGS:         store.AddCategory(domain.Category{Name: "Materials", Type: domain.TypeCOGS, Active: true}),
		domain.TypePayroll:      store.AddCategory(domain.Category{Name: "Payroll", Type: domain.TypePayroll, Active: true}),
		domain.TypeDepreciation: store.AddCategory(domain.Category{Name: "Depreciation", Type: domain.TypeDepreciation, Active: true}),
	}
	return &env{store: store, svc: New(store.UoW(), reports, logger), cats: cats}
}

func (e *env) addTx(amount string, side domain.Side, ctype domain.CategoryType, date time.Time, opts ...func(*domain.Transaction)) domain.Transaction {
	tx := domain.Transaction{Amount: dec(amount), Side: side, Currency: "EUR", Date: date}
	if ctype != "" {
		cat := e.cats[ctype]
		tx.CategoryID = &cat.ID
	}
	for _, opt := range opts {
		opt(&tx)
	}
	return e.store.AddTransaction(tx)
}

func TestDashboard(t *testing.T) {
	e := newEnv(t)
	mid := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	e.addTx("10000.00", domain.Credit, domain.TypeRevenue, mid)
	e.addTx("4000.00", domain.Debit, domain.TypeCOGS, mid)
	e.addTx("2000.00", domain.Debit, domain.TypePayroll, mid)
	e.addTx("500.00", domain.Debit, domain.TypeDepreciation, mid)

	dash, err := e.svc.Dashboard(context.Background(), q1Start, q1End)
	require.NoError(t, err)

	assert.True(t, dash.Revenue.Equal(dec("10000.00")))
	assert.True(t, dash.Expenses.Equal(dec("6500.00")))
	assert.True(t, dash.NetIncome.Equal(dec("3500.00")))
	// Statement EBITDA: operating income + depreciation.
	assert.True(t, dash.EBITDA.Equal(dec("4500.00")), "got %s", dash.EBITDA)
	// Dashboard variant: net income + depreciation + interest + taxes.
	assert.True(t, dash.EBITDAFromNet.Equal(dec("4000.00")), "got %s", dash.EBITDAFromNet)
}

func TestProjectSummaries(t *testing.T) {
	e := newEnv(t)
	budget := dec("10000.00")
	contract := dec("20000.00")
	proj := e.store.AddProject(domain.Project{
		Code: "PRJ-1", Name: "Alpha", ClientName: "Acme",
		Budget: &budget, ContractValue: &contract,
	})
	mid := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	e.addTx("5000.00", domain.Credit, domain.TypeRevenue, mid,
		func(tx *domain.Transaction) { tx.ProjectID = &proj.ID })
	e.addTx("2500.00", domain.Debit, domain.TypeCOGS, mid,
		func(tx *domain.Transaction) { tx.ProjectID = &proj.ID })

	rows, err := e.svc.ProjectSummaries(context.Background(), q1Start, q1End)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "PRJ-1", row.Code)
	assert.True(t, row.Revenue.Equal(dec("5000.00")))
	assert.True(t, row.Costs.Equal(dec("2500.00")))
	assert.True(t, row.Net.Equal(dec("2500.00")))
	assert.True(t, row.Margin.Equal(dec("50.00")))
	assert.True(t, row.BudgetConsumed.Equal(dec("25.00")), "got %s", row.BudgetConsumed)
	assert.True(t, row.ContractConsumed.Equal(dec("25.00")), "got %s", row.ContractConsumed)
	assert.True(t, row.MonthlyBurnRate.IsPositive())
}

func TestClientSummaries_EnumeratesBothSources(t *testing.T) {
	e := newEnv(t)
	proj := e.store.AddProject(domain.Project{Code: "PRJ-1", Name: "Alpha", ClientName: "Acme"})
	mid := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	// Unallocated transaction reaches Acme through its project link.
	e.addTx("1000.00", domain.Credit, domain.TypeRevenue, mid,
		func(tx *domain.Transaction) { tx.ProjectID = &proj.ID })
	// Allocated transaction names Globex directly.
	allocated := e.addTx("600.00", domain.Credit, domain.TypeRevenue, mid)
	e.store.SetAllocations(allocated.ID, []domain.Allocation{
		{ID: uuid.New(), TransactionID: allocated.ID, ClientName: "Globex",
			Percentage: dec("100"), AmountAllocated: dec("600.00")},
	})

	rows, err := e.svc.ClientSummaries(context.Background(), q1Start, q1End)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Acme", rows[0].ClientName)
	assert.True(t, rows[0].Revenue.Equal(dec("1000.00")))
	assert.Equal(t, "Globex", rows[1].ClientName)
	assert.True(t, rows[1].Revenue.Equal(dec("600.00")))
}

func TestTrend_MonthlyDirectionUp(t *testing.T) {
	e := newEnv(t)
	e.addTx("1000.00", domain.Credit, domain.TypeRevenue, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	e.addTx("2000.00", domain.Credit, domain.TypeRevenue, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC))
	e.addTx("4000.00", domain.Credit, domain.TypeRevenue, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))

	series, err := e.svc.Trend(context.Background(), q1Start, q1End, Monthly, MetricRevenue)
	require.NoError(t, err)

	require.Len(t, series.Points, 3)
	assert.Equal(t, "2025-01", series.Points[0].Label)
	assert.Equal(t, "2025-03", series.Points[2].Label)
	assert.Equal(t, "up", series.Direction)
	// 1000 -> 4000 over two steps: (4^(1/2) - 1) = 100% per period.
	assert.True(t, series.GrowthRate.Equal(dec("100.00")), "got %s", series.GrowthRate)
}

func TestTrend_StableAndDown(t *testing.T) {
	e := newEnv(t)
	e.addTx("1000.00", domain.Credit, domain.TypeRevenue, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	e.addTx("1000.00", domain.Credit, domain.TypeRevenue, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC))

	series, err := e.svc.Trend(context.Background(), q1Start,
		time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), Monthly, MetricRevenue)
	require.NoError(t, err)
	assert.Equal(t, "stable", series.Direction)

	e.addTx("250.00", domain.Credit, domain.TypeRevenue, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))
	series, err = e.svc.Trend(context.Background(), q1Start, q1End, Monthly, MetricRevenue)
	require.NoError(t, err)
	assert.Equal(t, "down", series.Direction)
}

func TestTrend_QuarterlyLabels(t *testing.T) {
	e := newEnv(t)
	e.addTx("1000.00", domain.Credit, domain.TypeRevenue, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC))
	e.addTx("3000.00", domain.Credit, domain.TypeRevenue, time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC))

	series, err := e.svc.Trend(context.Background(), q1Start,
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), Quarterly, MetricRevenue)
	require.NoError(t, err)

	require.Len(t, series.Points, 2)
	assert.Equal(t, "2025-Q1", series.Points[0].Label)
	assert.Equal(t, "2025-Q2", series.Points[1].Label)
	assert.True(t, series.Points[1].Value.Equal(dec("3000.00")))
}

func TestTrend_UnknownMetricRejected(t *testing.T) {
	e := newEnv(t)
	_, err := e.svc.Trend(context.Background(), q1Start, q1End, Monthly, "velocity")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "velocity")
}
