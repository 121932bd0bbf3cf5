package dto

import (
	"time"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PLLineItem is one category-level line of a statement section.
type PLLineItem struct {
	CategoryID *uuid.UUID          `json:"category_id,omitempty"`
	Name       string              `json:"name"`
	Type       domain.CategoryType `json:"type"`
	Amount     decimal.Decimal     `json:"amount"`
	Count      int                 `json:"transaction_count"`
}

// PLReport is a full Profit & Loss statement for a period.
//
// EBITDA here is operating income plus depreciation; the dashboard's
// historical net-income-based variant lives on DashboardRead.
type PLReport struct {
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	Currency  string     `json:"currency"`
	ProjectID *uuid.UUID `json:"project_id,omitempty"`

	Revenue      decimal.Decimal `json:"revenue"`
	RevenueItems []PLLineItem    `json:"revenue_items"`

	COGS      decimal.Decimal `json:"cogs"`
	COGSItems []PLLineItem    `json:"cogs_items"`

	GrossProfit decimal.Decimal `json:"gross_profit"`
	GrossMargin decimal.Decimal `json:"gross_margin"`

	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
	OperatingItems    []PLLineItem    `json:"operating_items"`

	OperatingIncome decimal.Decimal `json:"operating_income"`
	OperatingMargin decimal.Decimal `json:"operating_margin"`

	OtherIncome       decimal.Decimal `json:"other_income"`
	OtherIncomeItems  []PLLineItem    `json:"other_income_items"`
	OtherExpenses     decimal.Decimal `json:"other_expenses"`
	OtherExpenseItems []PLLineItem    `json:"other_expense_items"`

	Interest     decimal.Decimal `json:"interest"`
	Taxes        decimal.Decimal `json:"taxes"`
	Depreciation decimal.Decimal `json:"depreciation"`

	EBITDA    decimal.Decimal `json:"ebitda"`
	NetIncome decimal.Decimal `json:"net_income"`
	NetMargin decimal.Decimal `json:"net_margin"`

	Previous *PLReport `json:"previous,omitempty"`
}
