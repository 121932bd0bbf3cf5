package repository

import (
	"context"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/finsighthq/finsight/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type allocationRepository struct {
	db *gorm.DB
}

// NewAllocationRepository creates an AllocationRepository on the given
// session.
func NewAllocationRepository(db *gorm.DB) repository.AllocationRepository {
	return &allocationRepository{db: db}
}

func (r *allocationRepository) ListForTransaction(
	ctx context.Context,
	txID uuid.UUID,
) ([]domain.Allocation, error) {
	var models []Allocation
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", txID).
		Order("created_at asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Allocation, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *allocationRepository) ListForTransactions(
	ctx context.Context,
	txIDs []uuid.UUID,
) (map[uuid.UUID][]domain.Allocation, error) {
	out := make(map[uuid.UUID][]domain.Allocation)
	if len(txIDs) == 0 {
		return out, nil
	}
	var models []Allocation
	err := r.db.WithContext(ctx).
		Where("transaction_id IN ?", txIDs).
		Order("created_at asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	for _, m := range models {
		out[m.TransactionID] = append(out[m.TransactionID], m.toDomain())
	}
	return out, nil
}

// Replace deletes the transaction's allocation set and inserts the new one.
// Both statements run on the caller's session, so inside a unit of work the
// swap is atomic.
func (r *allocationRepository) Replace(
	ctx context.Context,
	txID uuid.UUID,
	allocations []domain.Allocation,
) error {
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", txID).
		Delete(&Allocation{}).Error
	if err != nil {
		return err
	}
	if len(allocations) == 0 {
		return nil
	}
	models := make([]Allocation, 0, len(allocations))
	for _, a := range allocations {
		models = append(models, allocationFromDomain(a))
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *allocationRepository) DeleteForTransaction(
	ctx context.Context,
	txID uuid.UUID,
) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("transaction_id = ?", txID).
		Delete(&Allocation{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
