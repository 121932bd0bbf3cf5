package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/finsighthq/finsight/pkg/dto"
	"github.com/finsighthq/finsight/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a ProjectRepository on the given session.
func NewProjectRepository(db *gorm.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var m Project
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	p := m.toDomain()
	return &p, nil
}

func (r *projectRepository) GetByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) (map[uuid.UUID]domain.Project, error) {
	out := make(map[uuid.UUID]domain.Project, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var models []Project
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}
	for _, m := range models {
		out[m.ID] = m.toDomain()
	}
	return out, nil
}

func (r *projectRepository) List(ctx context.Context, activeOnly bool) ([]domain.Project, error) {
	q := r.db.WithContext(ctx).Order("code asc")
	if activeOnly {
		q = q.Where("active = true")
	}
	var models []Project
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	m := projectFromDomain(p)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *projectRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.ProjectUpdate,
) error {
	updates := map[string]any{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.ClientName != nil {
		updates["client_name"] = *update.ClientName
	}
	if update.Budget != nil {
		updates["budget"] = *update.Budget
	}
	if update.ContractValue != nil {
		updates["contract_value"] = *update.ContractValue
	}
	if update.Status != nil {
		updates["status"] = string(*update.Status)
	}
	if update.Active != nil {
		updates["active"] = *update.Active
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&Project{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
	}
	return nil
}
