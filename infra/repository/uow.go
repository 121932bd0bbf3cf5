package repository

import (
	"context"

	"github.com/finsighthq/finsight/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides a transaction boundary and repository access in one
// abstraction. Repositories handed out inside Do share the transaction
// session, so multi-step writes commit or roll back together.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db, tx: db}
}

// Do runs fn inside one database transaction. The UoW passed to fn hands
// out repositories bound to that transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) Transactions() repository.TransactionRepository {
	return NewTransactionRepository(u.tx)
}

func (u *UoW) Projects() repository.ProjectRepository {
	return NewProjectRepository(u.tx)
}

func (u *UoW) Categories() repository.CategoryRepository {
	return NewCategoryRepository(u.tx)
}

func (u *UoW) Allocations() repository.AllocationRepository {
	return NewAllocationRepository(u.tx)
}
