package report

import (
	"context"
	"time"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/finsighthq/finsight/pkg/service/allocation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TotalQuery selects which contributions an aggregation sums.
type TotalQuery struct {
	Start time.Time
	End   time.Time

	// Side restricts to credit or debit movements; empty means both.
	Side domain.Side

	// ProjectID and ClientName route the query through effective
	// attributions instead of whole transactions.
	ProjectID  *uuid.UUID
	ClientName string

	// Types restricts to the given category types. When empty, credit
	// queries take income types or uncategorized, debit queries take
	// expense types or uncategorized; non-P&L buckets never contribute.
	Types []domain.CategoryType

	// ExcludeVAT reduces every contribution by its proportional VAT share.
	ExcludeVAT bool
}

// Total aggregates effective attributions over a period. An empty result
// set yields 0, never an error.
func (s *Service) Total(ctx context.Context, q TotalQuery) (decimal.Decimal, error) {
	data, err := s.loadPeriod(ctx, q.Start, q.End)
	if err != nil {
		return decimal.Zero, err
	}
	return s.totalFrom(data, q), nil
}

func (s *Service) totalFrom(data *periodData, q TotalQuery) decimal.Decimal {
	typeSet := make(map[domain.CategoryType]bool, len(q.Types))
	for _, t := range q.Types {
		typeSet[t] = true
	}

	total := decimal.Zero
	for _, tx := range data.txs {
		if q.Side != "" && tx.Side != q.Side {
			continue
		}
		if !categoryMatches(data.categoryTypeOf(tx), typeSet, q.Side) {
			continue
		}

		// Fast path: organization-wide totals sum transactions directly.
		if q.ProjectID == nil && q.ClientName == "" {
			total = total.Add(contribution(tx, tx.Amount, q.ExcludeVAT))
			continue
		}

		for _, att := range allocation.Resolve(tx, data.allocations[tx.ID], data.projects) {
			if q.ProjectID != nil && (att.ProjectID == nil || *att.ProjectID != *q.ProjectID) {
				continue
			}
			if q.ClientName != "" && att.ClientName != q.ClientName {
				continue
			}
			total = total.Add(contribution(tx, att.Amount, q.ExcludeVAT))
		}
	}
	return total
}

// categoryMatches applies the category-type filter. Uncategorized
// transactions (ctype == "") count toward side-level totals but never
// toward an explicit type set.
func categoryMatches(ctype domain.CategoryType, typeSet map[domain.CategoryType]bool, side domain.Side) bool {
	if len(typeSet) > 0 {
		if ctype == "" {
			return false
		}
		return typeSet[ctype]
	}
	if ctype == "" {
		return true
	}
	switch bucket := domain.BucketOf(ctype); {
	case bucket == domain.BucketNonPL:
		return false
	case side == domain.Credit:
		return bucket == domain.BucketIncome
	case side == domain.Debit:
		return bucket != domain.BucketIncome
	default:
		return true
	}
}

// contribution applies the optional proportional VAT exclusion to one
// contributing amount, whether it is a full transaction or an allocation
// share (the share's VAT is proportional to its share of the amount).
func contribution(tx domain.Transaction, amount decimal.Decimal, excludeVAT bool) decimal.Decimal {
	if !excludeVAT {
		return amount
	}
	return tx.NetOfVAT(amount)
}
