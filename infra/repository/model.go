package repository

import (
	"strings"
	"time"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a persisted bank movement.
type Transaction struct {
	gorm.Model
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ExternalID   string           `gorm:"uniqueIndex;size:128"`
	Amount       decimal.Decimal  `gorm:"type:decimal(20,2);not null"`
	Side         string           `gorm:"type:varchar(6);not null;index"`
	Currency     string           `gorm:"type:varchar(3);not null;default:'EUR'"`
	Date         time.Time        `gorm:"not null;index"`
	CategoryID   *uuid.UUID       `gorm:"type:uuid;index"`
	ProjectID    *uuid.UUID       `gorm:"type:uuid;index"`
	VATAmount    *decimal.Decimal `gorm:"type:decimal(20,2)"`
	VATRate      *decimal.Decimal `gorm:"type:decimal(9,4)"`
	Excluded     bool             `gorm:"not null;default:false;index"`
	Label        string           `gorm:"size:512"`
	Counterparty string           `gorm:"size:255"`
}

// Project is a persisted project record.
type Project struct {
	gorm.Model
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Code          string           `gorm:"uniqueIndex;not null;size:32"`
	Name          string           `gorm:"not null;size:255"`
	ClientName    string           `gorm:"size:255;index"`
	Budget        *decimal.Decimal `gorm:"type:decimal(20,2)"`
	ContractValue *decimal.Decimal `gorm:"type:decimal(20,2)"`
	Status        string           `gorm:"type:varchar(16);not null;default:'active'"`
	Active        bool             `gorm:"not null;default:true"`
}

// Category is a persisted category record. Keywords are stored as a
// comma-separated list.
type Category struct {
	gorm.Model
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name     string     `gorm:"not null;size:255"`
	Type     string     `gorm:"type:varchar(32);not null;index"`
	ParentID *uuid.UUID `gorm:"type:uuid"`
	Keywords string     `gorm:"type:text"`
	Active   bool       `gorm:"not null;default:true"`
	System   bool       `gorm:"not null;default:false"`
}

// Allocation is a persisted fractional attribution. Deleting the parent
// transaction cascades; deleting the project nulls the reference.
type Allocation struct {
	gorm.Model
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TransactionID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Transaction     Transaction     `gorm:"constraint:OnDelete:CASCADE"`
	ProjectID       *uuid.UUID      `gorm:"type:uuid;index"`
	Project         *Project        `gorm:"constraint:OnDelete:SET NULL"`
	ClientName      string          `gorm:"size:255;index"`
	Percentage      decimal.Decimal `gorm:"type:decimal(9,4);not null"`
	AmountAllocated decimal.Decimal `gorm:"type:decimal(20,2);not null"`
}

func (m Transaction) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:           m.ID,
		ExternalID:   m.ExternalID,
		Amount:       m.Amount,
		Side:         domain.Side(m.Side),
		Currency:     m.Currency,
		Date:         m.Date,
		CategoryID:   m.CategoryID,
		ProjectID:    m.ProjectID,
		VATAmount:    m.VATAmount,
		VATRate:      m.VATRate,
		Excluded:     m.Excluded,
		Label:        m.Label,
		Counterparty: m.Counterparty,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (m Project) toDomain() domain.Project {
	return domain.Project{
		ID:            m.ID,
		Code:          m.Code,
		Name:          m.Name,
		ClientName:    m.ClientName,
		Budget:        m.Budget,
		ContractValue: m.ContractValue,
		Status:        domain.ProjectStatus(m.Status),
		Active:        m.Active,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func projectFromDomain(p *domain.Project) Project {
	return Project{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		ClientName:    p.ClientName,
		Budget:        p.Budget,
		ContractValue: p.ContractValue,
		Status:        string(p.Status),
		Active:        p.Active,
	}
}

func (m Category) toDomain() domain.Category {
	return domain.Category{
		ID:        m.ID,
		Name:      m.Name,
		Type:      domain.CategoryType(m.Type),
		ParentID:  m.ParentID,
		Keywords:  splitKeywords(m.Keywords),
		Active:    m.Active,
		System:    m.System,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func categoryFromDomain(c *domain.Category) Category {
	return Category{
		ID:       c.ID,
		Name:     c.Name,
		Type:     string(c.Type),
		ParentID: c.ParentID,
		Keywords: strings.Join(c.Keywords, ","),
		Active:   c.Active,
		System:   c.System,
	}
}

func (m Allocation) toDomain() domain.Allocation {
	return domain.Allocation{
		ID:              m.ID,
		TransactionID:   m.TransactionID,
		ProjectID:       m.ProjectID,
		ClientName:      m.ClientName,
		Percentage:      m.Percentage,
		AmountAllocated: m.AmountAllocated,
		CreatedAt:       m.CreatedAt,
	}
}

func allocationFromDomain(a domain.Allocation) Allocation {
	return Allocation{
		ID:              a.ID,
		TransactionID:   a.TransactionID,
		ProjectID:       a.ProjectID,
		ClientName:      a.ClientName,
		Percentage:      a.Percentage,
		AmountAllocated: a.AmountAllocated,
	}
}

func splitKeywords(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
