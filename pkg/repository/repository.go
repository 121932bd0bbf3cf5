// Package repository defines the data access interfaces consumed by the
// service layer. Implementations live in infra/repository; tests use the
// in-memory fakes from internal/fixtures.
package repository

import (
	"context"
	"time"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/finsighthq/finsight/pkg/dto"
	"github.com/google/uuid"
)

// TransactionRepository provides access to bank transactions.
type TransactionRepository interface {
	// Get retrieves a transaction by id, or domain.ErrTransactionNotFound.
	Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)

	// GetForUpdate retrieves a transaction and locks its row for the
	// duration of the surrounding unit of work. Allocation writers use it
	// to serialize concurrent replace-all operations on one transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)

	// ListInPeriod returns all non-excluded transactions with
	// start <= date <= end, ordered by date.
	ListInPeriod(ctx context.Context, start, end time.Time) ([]domain.Transaction, error)

	// Update applies the operator-editable fields to a transaction.
	Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error
}

// ProjectRepository provides access to projects.
type ProjectRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Project, error)

	// GetByIDs resolves a batch of project ids in one lookup. Unknown ids
	// are simply absent from the result map.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Project, error)

	List(ctx context.Context, activeOnly bool) ([]domain.Project, error)
	Create(ctx context.Context, p *domain.Project) error
	Update(ctx context.Context, id uuid.UUID, update dto.ProjectUpdate) error
}

// CategoryRepository provides access to categories.
type CategoryRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// GetByIDs resolves a batch of category ids in one lookup. Unknown ids
	// are absent from the result map.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Category, error)

	ListActive(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AllocationRepository provides access to transaction allocations.
type AllocationRepository interface {
	ListForTransaction(ctx context.Context, txID uuid.UUID) ([]domain.Allocation, error)

	// ListForTransactions returns the allocations of many transactions in
	// one query, keyed by transaction id.
	ListForTransactions(ctx context.Context, txIDs []uuid.UUID) (map[uuid.UUID][]domain.Allocation, error)

	// Replace deletes every allocation of the transaction and inserts the
	// given set. Callers must run it inside a unit of work so the swap is
	// atomic.
	Replace(ctx context.Context, txID uuid.UUID, allocations []domain.Allocation) error

	// DeleteForTransaction removes all allocations of a transaction and
	// returns how many were deleted.
	DeleteForTransaction(ctx context.Context, txID uuid.UUID) (int64, error)
}

// UnitOfWork provides a transaction boundary and repository access bound
// to the same database session, so multi-step writes are atomic.
type UnitOfWork interface {
	// Do runs fn inside one storage transaction. The UnitOfWork passed to
	// fn hands out repositories bound to that transaction.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Transactions() TransactionRepository
	Projects() ProjectRepository
	Categories() CategoryRepository
	Allocations() AllocationRepository
}
