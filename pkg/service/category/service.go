// Package category provides category management. System categories are
// protected from deletion.
package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/finsighthq/finsight/pkg/dto"
	"github.com/finsighthq/finsight/pkg/repository"
	"github.com/google/uuid"
)

// Service manages categories.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a category Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// List returns all active categories.
func (s *Service) List(ctx context.Context) ([]dto.CategoryRead, error) {
	categories, err := s.uow.Categories().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryRead, 0, len(categories))
	for _, c := range categories {
		out = append(out, toRead(c))
	}
	return out, nil
}

// Create registers a new active category after validating its type.
func (s *Service) Create(ctx context.Context, create dto.CategoryCreate) (*dto.CategoryRead, error) {
	if !domain.IsValidCategoryType(create.Type) {
		return nil, fmt.Errorf("unknown category type %q", create.Type)
	}
	c := &domain.Category{
		ID:       uuid.New(),
		Name:     create.Name,
		Type:     create.Type,
		ParentID: create.ParentID,
		Keywords: create.Keywords,
		Active:   true,
	}
	if err := s.uow.Categories().Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("category created", "name", c.Name, "type", c.Type)
	read := toRead(*c)
	return &read, nil
}

// Delete removes a category. System categories are refused.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		c, err := uow.Categories().Get(ctx, id)
		if err != nil {
			return err
		}
		if c.System {
			return fmt.Errorf("%w: %s", domain.ErrSystemCategory, c.Name)
		}
		return uow.Categories().Delete(ctx, id)
	})
}

func toRead(c domain.Category) dto.CategoryRead {
	return dto.CategoryRead{
		ID:       c.ID,
		Name:     c.Name,
		Type:     c.Type,
		ParentID: c.ParentID,
		Keywords: c.Keywords,
		Active:   c.Active,
		System:   c.System,
	}
}
