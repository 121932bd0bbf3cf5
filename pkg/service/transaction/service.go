// Package transaction provides operator-facing transaction management:
// listing, category/project assignment, the exclusion flag and keyword
// category suggestions. Ingestion itself is an external collaborator.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finsighthq/finsight/pkg/categorize"
	"github.com/finsighthq/finsight/pkg/dto"
	"github.com/finsighthq/finsight/pkg/repository"
	"github.com/google/uuid"
)

// Service manages transactions.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a transaction Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// List returns the non-excluded transactions of a period enriched with
// category and project display fields.
func (s *Service) List(ctx context.Context, start, end time.Time) ([]dto.TransactionRead, error) {
	txs, err := s.uow.Transactions().ListInPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var catIDs, projIDs, txIDs []uuid.UUID
	for _, tx := range txs {
		txIDs = append(txIDs, tx.ID)
		if tx.CategoryID != nil {
			catIDs = append(catIDs, *tx.CategoryID)
		}
		if tx.ProjectID != nil {
			projIDs = append(projIDs, *tx.ProjectID)
		}
	}
	categories, err := s.uow.Categories().GetByIDs(ctx, catIDs)
	if err != nil {
		return nil, err
	}
	projects, err := s.uow.Projects().GetByIDs(ctx, projIDs)
	if err != nil {
		return nil, err
	}
	allocations, err := s.uow.Allocations().ListForTransactions(ctx, txIDs)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TransactionRead, 0, len(txs))
	for _, tx := range txs {
		read := dto.TransactionRead{
			ID:           tx.ID,
			ExternalID:   tx.ExternalID,
			Amount:       tx.Amount,
			Side:         tx.Side,
			Currency:     tx.Currency,
			Date:         tx.Date,
			CategoryID:   tx.CategoryID,
			ProjectID:    tx.ProjectID,
			VATAmount:    tx.VATAmount,
			VATRate:      tx.VATRate,
			Excluded:     tx.Excluded,
			Label:        tx.Label,
			Counterparty: tx.Counterparty,
			Allocated:    len(allocations[tx.ID]) > 0,
		}
		if tx.CategoryID != nil {
			if c, ok := categories[*tx.CategoryID]; ok {
				read.CategoryName = c.Name
			}
		}
		if tx.ProjectID != nil {
			if p, ok := projects[*tx.ProjectID]; ok {
				read.ProjectCode = p.Code
			}
		}
		out = append(out, read)
	}
	return out, nil
}

// Update applies category/project assignment or the exclusion flag.
// Referenced ids are validated before anything is written.
func (s *Service) Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.Transactions().Get(ctx, id); err != nil {
			return err
		}
		if update.CategoryID != nil {
			if _, err := uow.Categories().Get(ctx, *update.CategoryID); err != nil {
				return err
			}
		}
		if update.ProjectID != nil {
			if _, err := uow.Projects().Get(ctx, *update.ProjectID); err != nil {
				return err
			}
		}
		return uow.Transactions().Update(ctx, id, update)
	})
}

// SuggestCategory scores the transaction's label and counterparty against
// the keyword lists of active categories. Returns nil when nothing
// matches.
func (s *Service) SuggestCategory(ctx context.Context, id uuid.UUID) (*dto.CategorySuggestion, error) {
	tx, err := s.uow.Transactions().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	categories, err := s.uow.Categories().ListActive(ctx)
	if err != nil {
		return nil, err
	}

	match := categorize.Suggest(categories, fmt.Sprintf("%s %s", tx.Label, tx.Counterparty))
	if match == nil {
		return nil, nil
	}
	s.logger.Debug("category suggested",
		"transaction_id", id, "category", match.Category.Name, "score", match.Score)
	return &dto.CategorySuggestion{
		CategoryID:   match.Category.ID,
		CategoryName: match.Category.Name,
		CategoryType: match.Category.Type,
		Score:        match.Score,
	}, nil
}
