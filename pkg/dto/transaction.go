package dto

import (
	"time"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRead is a read-optimized transaction shape for listings.
type TransactionRead struct {
	ID           uuid.UUID        `json:"id"`
	ExternalID   string           `json:"external_id"`
	Amount       decimal.Decimal  `json:"amount"`
	Side         domain.Side      `json:"side"`
	Currency     string           `json:"currency"`
	Date         time.Time        `json:"date"`
	CategoryID   *uuid.UUID       `json:"category_id,omitempty"`
	CategoryName string           `json:"category_name,omitempty"`
	ProjectID    *uuid.UUID       `json:"project_id,omitempty"`
	ProjectCode  string           `json:"project_code,omitempty"`
	VATAmount    *decimal.Decimal `json:"vat_amount,omitempty"`
	VATRate      *decimal.Decimal `json:"vat_rate,omitempty"`
	Excluded     bool             `json:"excluded"`
	Label        string           `json:"label"`
	Counterparty string           `json:"counterparty,omitempty"`
	Allocated    bool             `json:"allocated"`
}

// TransactionUpdate carries the operator-editable fields of a transaction.
// Nil pointers leave the stored value untouched.
type TransactionUpdate struct {
	CategoryID *uuid.UUID `json:"category_id"`
	ProjectID  *uuid.UUID `json:"project_id"`
	Excluded   *bool      `json:"excluded"`
}

// CategorySuggestion is the result of keyword-based auto-categorization.
type CategorySuggestion struct {
	CategoryID   uuid.UUID           `json:"category_id"`
	CategoryName string              `json:"category_name"`
	CategoryType domain.CategoryType `json:"category_type"`
	Score        int                 `json:"score"`
}
