// Package report implements the aggregation engine and the P&L report
// builder on top of effective attributions.
//
// All computation is request-scoped: each call loads the period's
// transactions, allocations and lookup tables once and aggregates in
// memory, so concurrent calls never share mutable state.
package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/finsighthq/finsight/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Service computes aggregates and statements over a period.
type Service struct {
	uow      repository.UnitOfWork
	currency string
	logger   *slog.Logger
}

// New creates a report Service. currency is the reporting currency stamped
// on statements.
func New(uow repository.UnitOfWork, currency string, logger *slog.Logger) *Service {
	return &Service{uow: uow, currency: currency, logger: logger}
}

// periodData is the per-call cache of everything a report needs: the
// period's transactions plus batch-resolved allocations, categories and
// projects. Built once per call, shared read-only afterwards.
type periodData struct {
	txs         []domain.Transaction
	allocations map[uuid.UUID][]domain.Allocation
	categories  map[uuid.UUID]domain.Category
	projects    map[uuid.UUID]domain.Project
}

func (s *Service) loadPeriod(ctx context.Context, start, end time.Time) (*periodData, error) {
	txs, err := s.uow.Transactions().ListInPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	txIDs := make([]uuid.UUID, 0, len(txs))
	catIDs := make([]uuid.UUID, 0, len(txs))
	projIDs := make([]uuid.UUID, 0, len(txs))
	seenCat := make(map[uuid.UUID]bool)
	seenProj := make(map[uuid.UUID]bool)
	for _, tx := range txs {
		txIDs = append(txIDs, tx.ID)
		if tx.CategoryID != nil && !seenCat[*tx.CategoryID] {
			seenCat[*tx.CategoryID] = true
			catIDs = append(catIDs, *tx.CategoryID)
		}
		if tx.ProjectID != nil && !seenProj[*tx.ProjectID] {
			seenProj[*tx.ProjectID] = true
			projIDs = append(projIDs, *tx.ProjectID)
		}
	}

	allocations, err := s.uow.Allocations().ListForTransactions(ctx, txIDs)
	if err != nil {
		return nil, err
	}
	for _, allocs := range allocations {
		for _, a := range allocs {
			if a.ProjectID != nil && !seenProj[*a.ProjectID] {
				seenProj[*a.ProjectID] = true
				projIDs = append(projIDs, *a.ProjectID)
			}
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

	return &periodData{
		txs:         txs,
		allocations: allocations,
		categories:  categories,
		projects:    projects,
	}, nil
}

// categoryTypeOf returns the category type of a transaction, or "" when it
// has no (known) category.
func (d *periodData) categoryTypeOf(tx domain.Transaction) domain.CategoryType {
	if tx.CategoryID == nil {
		return ""
	}
	c, ok := d.categories[*tx.CategoryID]
	if !ok {
		return ""
	}
	return c.Type
}

// marginPct returns 100*part/revenue rounded to 2 decimals, and 0 when
// revenue is 0. Division by zero resolves to 0, never an error.
func marginPct(part, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return part.Div(revenue).Mul(hundred).Round(2)
}
