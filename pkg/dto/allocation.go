// Package dto holds the data transfer objects crossing layer boundaries:
// service inputs coming from transport and read-optimized shapes going back.
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationInput is one proposed attribution in a replace-all write.
// Percentage and Amount are both optional; the writer derives the missing
// half, or treats a lone entry with neither as 100%.
type AllocationInput struct {
	ProjectID  *uuid.UUID       `json:"project_id"`
	ClientName string           `json:"client_name"`
	Percentage *decimal.Decimal `json:"percentage"`
	Amount     *decimal.Decimal `json:"amount"`
}

// AllocationRead is a stored allocation enriched with project display
// fields for API responses.
type AllocationRead struct {
	ID              uuid.UUID       `json:"id"`
	TransactionID   uuid.UUID       `json:"transaction_id"`
	ProjectID       *uuid.UUID      `json:"project_id,omitempty"`
	ProjectCode     string          `json:"project_code,omitempty"`
	ProjectName     string          `json:"project_name,omitempty"`
	ClientName      string          `json:"client_name,omitempty"`
	Percentage      decimal.Decimal `json:"percentage"`
	AmountAllocated decimal.Decimal `json:"amount_allocated"`
	CreatedAt       time.Time       `json:"created_at"`
}
