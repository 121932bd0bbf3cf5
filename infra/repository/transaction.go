// Package repository contains the gorm-backed implementations of the data
// access interfaces in pkg/repository.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/finsighthq/finsight/pkg/dto"
	"github.com/finsighthq/finsight/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a TransactionRepository on the given
// session.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	var m Transaction
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	t := m.toDomain()
	return &t, nil
}

func (r *transactionRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	var m Transaction
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	t := m.toDomain()
	return &t, nil
}

func (r *transactionRepository) ListInPeriod(
	ctx context.Context,
	start, end time.Time,
) ([]domain.Transaction, error) {
	var models []Transaction
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ? AND excluded = false", start, end).
		Order("date asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Transaction, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *transactionRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.TransactionUpdate,
) error {
	updates := map[string]any{}
	if update.CategoryID != nil {
		updates["category_id"] = *update.CategoryID
	}
	if update.ProjectID != nil {
		updates["project_id"] = *update.ProjectID
	}
	if update.Excluded != nil {
		updates["excluded"] = *update.Excluded
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, id)
	}
	return nil
}
