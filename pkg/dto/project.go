package dto

import (
	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectCreate is the input for registering a new project.
type ProjectCreate struct {
	Code          string           `json:"code" validate:"required,max=32"`
	Name          string           `json:"name" validate:"required,max=255"`
	ClientName    string           `json:"client_name"`
	Budget        *decimal.Decimal `json:"budget"`
	ContractValue *decimal.Decimal `json:"contract_value"`
}

// ProjectUpdate carries optional project field updates.
type ProjectUpdate struct {
	Name          *string               `json:"name"`
	ClientName    *string               `json:"client_name"`
	Budget        *decimal.Decimal      `json:"budget"`
	ContractValue *decimal.Decimal      `json:"contract_value"`
	Status        *domain.ProjectStatus `json:"status"`
	Active        *bool                 `json:"active"`
}

// ProjectRead is a project shape for API responses.
type ProjectRead struct {
	ID            uuid.UUID            `json:"id"`
	Code          string               `json:"code"`
	Name          string               `json:"name"`
	ClientName    string               `json:"client_name,omitempty"`
	Budget        *decimal.Decimal     `json:"budget,omitempty"`
	ContractValue *decimal.Decimal     `json:"contract_value,omitempty"`
	Status        domain.ProjectStatus `json:"status"`
	Active        bool                 `json:"active"`
}

// CategoryCreate is the input for registering a new category.
type CategoryCreate struct {
	Name     string              `json:"name" validate:"required,max=255"`
	Type     domain.CategoryType `json:"type" validate:"required"`
	ParentID *uuid.UUID          `json:"parent_id"`
	Keywords []string            `json:"keywords"`
}

// CategoryRead is a category shape for API responses.
type CategoryRead struct {
	ID       uuid.UUID           `json:"id"`
	Name     string              `json:"name"`
	Type     domain.CategoryType `json:"type"`
	ParentID *uuid.UUID          `json:"parent_id,omitempty"`
	Keywords []string            `json:"keywords,omitempty"`
	Active   bool                `json:"active"`
	System   bool                `json:"system"`
}
