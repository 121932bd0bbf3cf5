// Package project provides project management for the reporting backend.
package project

import (
	"context"
	"log/slog"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/finsighthq/finsight/pkg/dto"
	"github.com/finsighthq/finsight/pkg/repository"
	"github.com/google/uuid"
)

// Service manages projects.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a project Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// List returns projects, optionally restricted to active ones.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]dto.ProjectRead, error) {
	projects, err := s.uow.Projects().List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectRead, 0, len(projects))
	for _, p := range projects {
		out = append(out, toRead(p))
	}
	return out, nil
}

// Create registers a new active project.
func (s *Service) Create(ctx context.Context, create dto.ProjectCreate) (*dto.ProjectRead, error) {
	p := &domain.Project{
		ID:            uuid.New(),
		Code:          create.Code,
		Name:          create.Name,
		ClientName:    create.ClientName,
		Budget:        create.Budget,
		ContractValue: create.ContractValue,
		Status:        domain.ProjectActive,
		Active:        true,
	}
	if err := s.uow.Projects().Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("project created", "code", p.Code, "id", p.ID)
	read := toRead(*p)
	return &read, nil
}

// Update applies partial project changes.
func (s *Service) Update(ctx context.Context, id uuid.UUID, update dto.ProjectUpdate) (*dto.ProjectRead, error) {
	var read dto.ProjectRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := uow.Projects().Update(ctx, id, update); err != nil {
			return err
		}
		p, err := uow.Projects().Get(ctx, id)
		if err != nil {
			return err
		}
		read = toRead(*p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &read, nil
}

func toRead(p domain.Project) dto.ProjectRead {
	return dto.ProjectRead{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		ClientName:    p.ClientName,
		Budget:        p.Budget,
		ContractValue: p.ContractValue,
		Status:        p.Status,
		Active:        p.Active,
	}
}
