package allocation

import (
	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Attribution is one effective attribution of a transaction's amount, as
// used by aggregation: either a stored allocation or the synthetic 100%
// fallback from the transaction's direct project link.
type Attribution struct {
	ProjectID  *uuid.UUID
	ClientName string
	Fraction   decimal.Decimal
	Amount     decimal.Decimal
}

// Resolve returns the attributions aggregation must use for a transaction.
//
// Stored allocations are returned unchanged. A transaction without any
// falls back to a single 100% attribution to its direct project (carrying
// that project's client name), and a transaction with neither contributes
// to no per-project or per-client aggregate. The fallback never fires when
// stored allocations exist, which is what prevents double counting.
func Resolve(
	tx domain.Transaction,
	allocations []domain.Allocation,
	projects map[uuid.UUID]domain.Project,
) []Attribution {
	if len(allocations) > 0 {
		out := make([]Attribution, 0, len(allocations))
		for _, a := range allocations {
			out = append(out, Attribution{
				ProjectID:  a.ProjectID,
				ClientName: a.ClientName,
				Fraction:   a.Percentage.Div(hundred),
				Amount:     a.AmountAllocated,
			})
		}
		return out
	}

	if tx.ProjectID == nil {
		return nil
	}
	client := ""
	if p, ok := projects[*tx.ProjectID]; ok {
		client = p.ClientName
	}
	return []Attribution{{
		ProjectID:  tx.ProjectID,
		ClientName: client,
		Fraction:   decimal.NewFromInt(1),
		Amount:     tx.Amount,
	}}
}
