// Package domain defines the core entities of the reporting engine:
// bank transactions, projects, categories and fractional allocations,
// together with the invariants the service layer enforces on them.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side indicates the direction of a bank movement.
type Side string

const (
	// Credit marks an income-direction movement.
	Credit Side = "credit"
	// Debit marks an expense-direction movement.
	Debit Side = "debit"
)

// ProjectStatus describes the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// Transaction is a single bank movement. Transactions are created by
// ingestion and never deleted; the Excluded flag removes one from all
// reporting instead.
type Transaction struct {
	ID           uuid.UUID
	ExternalID   string
	Amount       decimal.Decimal // non-negative, 2 decimal places
	Side         Side
	Currency     string
	Date         time.Time
	CategoryID   *uuid.UUID
	ProjectID    *uuid.UUID
	VATAmount    *decimal.Decimal
	VATRate      *decimal.Decimal
	Excluded     bool
	Label        string
	Counterparty string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NetOfVAT returns the amount reduced by its proportional VAT share:
// amount * (1 - vat/amount). A zero amount or missing VAT returns the
// amount unchanged.
func (t Transaction) NetOfVAT(amount decimal.Decimal) decimal.Decimal {
	if t.VATAmount == nil || t.VATAmount.IsZero() || t.Amount.IsZero() {
		return amount
	}
	factor := decimal.NewFromInt(1).Sub(t.VATAmount.Div(t.Amount))
	return amount.Mul(factor).Round(2)
}

// Project is a cost/revenue grouping. Referenced by transactions and
// allocations, never owned by them.
type Project struct {
	ID            uuid.UUID
	Code          string
	Name          string
	ClientName    string
	Budget        *decimal.Decimal
	ContractValue *decimal.Decimal
	Status        ProjectStatus
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Category classifies a transaction for P&L placement. System categories
// cannot be deleted.
type Category struct {
	ID        uuid.UUID
	Name      string
	Type      CategoryType
	ParentID  *uuid.UUID
	Keywords  []string
	Active    bool
	System    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Allocation is a fractional attribution of one transaction to a project
// and/or a client name. For any transaction the stored set of allocations
// is either empty or complete: percentages sum to 100 and each amount
// reconciles with its percentage within a cent.
type Allocation struct {
	ID              uuid.UUID
	TransactionID   uuid.UUID
	ProjectID       *uuid.UUID
	ClientName      string
	Percentage      decimal.Decimal // 4 decimal places, 0-100
	AmountAllocated decimal.Decimal // 2 decimal places
	CreatedAt       time.Time
}
