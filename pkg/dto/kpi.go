package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardRead is the organization-wide KPI snapshot for a period.
//
// EBITDAFromNet is the historical dashboard formula
// (net income + depreciation + interest + taxes); it diverges from the
// statement's EBITDA whenever other income or other expenses are non-zero,
// so both are reported side by side.
type DashboardRead struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Currency  string    `json:"currency"`

	Revenue         decimal.Decimal `json:"revenue"`
	Expenses        decimal.Decimal `json:"expenses"`
	GrossProfit     decimal.Decimal `json:"gross_profit"`
	GrossMargin     decimal.Decimal `json:"gross_margin"`
	OperatingIncome decimal.Decimal `json:"operating_income"`
	OperatingMargin decimal.Decimal `json:"operating_margin"`
	NetIncome       decimal.Decimal `json:"net_income"`
	NetMargin       decimal.Decimal `json:"net_margin"`
	EBITDA          decimal.Decimal `json:"ebitda"`
	EBITDAFromNet   decimal.Decimal `json:"ebitda_from_net"`
}

// ProjectSummary is a per-project KPI row.
type ProjectSummary struct {
	ProjectID        uuid.UUID        `json:"project_id"`
	Code             string           `json:"code"`
	Name             string           `json:"name"`
	ClientName       string           `json:"client_name,omitempty"`
	Revenue          decimal.Decimal  `json:"revenue"`
	Costs            decimal.Decimal  `json:"costs"`
	Net              decimal.Decimal  `json:"net"`
	Margin           decimal.Decimal  `json:"margin"`
	Budget           *decimal.Decimal `json:"budget,omitempty"`
	BudgetConsumed   decimal.Decimal  `json:"budget_consumed"`
	ContractValue    *decimal.Decimal `json:"contract_value,omitempty"`
	ContractConsumed decimal.Decimal  `json:"contract_consumed"`
	MonthlyBurnRate  decimal.Decimal  `json:"monthly_burn_rate"`
}

// ClientSummary is a per-client KPI row.
type ClientSummary struct {
	ClientName string          `json:"client_name"`
	Revenue    decimal.Decimal `json:"revenue"`
	Costs      decimal.Decimal `json:"costs"`
	Net        decimal.Decimal `json:"net"`
	Margin     decimal.Decimal `json:"margin"`
}

// TrendPoint is one sub-period observation in a trend series.
type TrendPoint struct {
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	Label       string          `json:"label"`
	Value       decimal.Decimal `json:"value"`
}

// TrendSeries is a period-over-period series for one metric.
type TrendSeries struct {
	Metric     string          `json:"metric"`
	Interval   string          `json:"interval"`
	Points     []TrendPoint    `json:"points"`
	Direction  string          `json:"direction"`
	GrowthRate decimal.Decimal `json:"growth_rate"`
}
