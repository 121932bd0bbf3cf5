package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/finsighthq/finsight/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a CategoryRepository on the given session.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var m Category
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	c := m.toDomain()
	return &c, nil
}

func (r *categoryRepository) GetByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) (map[uuid.UUID]domain.Category, error) {
	out := make(map[uuid.UUID]domain.Category, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var models []Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}
	for _, m := range models {
		out[m.ID] = m.toDomain()
	}
	return out, nil
}

func (r *categoryRepository) ListActive(ctx context.Context) ([]domain.Category, error) {
	var models []Category
	err := r.db.WithContext(ctx).
		Where("active = true").
		Order("name asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	m := categoryFromDomain(c)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, id)
	}
	return nil
}
