// Package allocation implements the allocation validator/writer and the
// effective attribution resolver.
//
// A transaction either has no stored allocations or a complete set whose
// percentages sum to 100 within 0.01. Writes replace the whole set
// atomically; there is no incremental patching.
package allocation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/finsighthq/finsight/pkg/dto"
	"github.com/finsighthq/finsight/pkg/repository"
	"github.com/google/uuid"
)

// Service validates and stores fractional attributions of transactions.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an allocation Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// WriteAllocations validates the proposed attribution set for a transaction
// and atomically replaces its stored allocations. On any validation error
// nothing is mutated and the previous set stays visible.
func (s *Service) WriteAllocations(
	ctx context.Context,
	txID uuid.UUID,
	inputs []dto.AllocationInput,
) ([]dto.AllocationRead, error) {
	logger := s.logger.With("transaction_id", txID, "entries", len(inputs))

	var out []dto.AllocationRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		// Lock the parent row so concurrent replace-all writes against the
		// same transaction are serialized. The transaction must exist before
		// any input validation runs.
		tx, err := uow.Transactions().GetForUpdate(ctx, txID)
		if err != nil {
			return err
		}

		if len(inputs) == 0 {
			return fmt.Errorf("%w: no entries given for transaction %s",
				domain.ErrAllocationEmpty, txID)
		}
		if err := validateTargets(inputs); err != nil {
			return err
		}

		projects, err := resolveProjects(ctx, uow.Projects(), inputs)
		if err != nil {
			return err
		}

		allocations, err := buildSet(*tx, inputs)
		if err != nil {
			return err
		}

		if err := uow.Allocations().Replace(ctx, txID, allocations); err != nil {
			return err
		}
		out = toReads(allocations, projects)
		return nil
	})
	if err != nil {
		logger.Warn("allocation write rejected", "error", err)
		return nil, err
	}
	logger.Info("allocations replaced", "stored", len(out))
	return out, nil
}

// GetAllocations returns the stored allocations of a transaction enriched
// with project display fields.
func (s *Service) GetAllocations(ctx context.Context, txID uuid.UUID) ([]dto.AllocationRead, error) {
	if _, err := s.uow.Transactions().Get(ctx, txID); err != nil {
		return nil, err
	}
	allocations, err := s.uow.Allocations().ListForTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(allocations))
	for _, a := range allocations {
		if a.ProjectID != nil {
			ids = append(ids, *a.ProjectID)
		}
	}
	projects, err := s.uow.Projects().GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toReads(allocations, projects), nil
}

// DeleteAllocations removes every allocation of a transaction and returns
// the number of rows deleted. The transaction reverts to fallback
// attribution.
func (s *Service) DeleteAllocations(ctx context.Context, txID uuid.UUID) (int64, error) {
	var count int64
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.Transactions().GetForUpdate(ctx, txID); err != nil {
			return err
		}
		var err error
		count, err = uow.Allocations().DeleteForTransaction(ctx, txID)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("allocations deleted", "transaction_id", txID, "count", count)
	return count, nil
}

func validateTargets(inputs []dto.AllocationInput) error {
	for i, in := range inputs {
		if in.ProjectID == nil && in.ClientName == "" {
			return fmt.Errorf("%w: entry %d has neither", domain.ErrAllocationTarget, i+1)
		}
	}
	return nil
}

func resolveProjects(
	ctx context.Context,
	repo repository.ProjectRepository,
	inputs []dto.AllocationInput,
) (map[uuid.UUID]domain.Project, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	seen := make(map[uuid.UUID]bool, len(inputs))
	for _, in := range inputs {
		if in.ProjectID != nil && !seen[*in.ProjectID] {
			seen[*in.ProjectID] = true
			ids = append(ids, *in.ProjectID)
		}
	}
	projects, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := projects[id]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
		}
	}
	return projects, nil
}

func toReads(
	allocations []domain.Allocation,
	projects map[uuid.UUID]domain.Project,
) []dto.AllocationRead {
	out := make([]dto.AllocationRead, 0, len(allocations))
	for _, a := range allocations {
		read := dto.AllocationRead{
			ID:              a.ID,
			TransactionID:   a.TransactionID,
			ProjectID:       a.ProjectID,
			ClientName:      a.ClientName,
			Percentage:      a.Percentage,
			AmountAllocated: a.AmountAllocated,
			CreatedAt:       a.CreatedAt,
		}
		if a.ProjectID != nil {
			if p, ok := projects[*a.ProjectID]; ok {
				read.ProjectCode = p.Code
				read.ProjectName = p.Name
			}
		}
		out = append(out, read)
	}
	return out
}
