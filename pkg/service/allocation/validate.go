package allocation

import (
	"fmt"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/finsighthq/finsight/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	// tolerance is the absolute slack on both the percentage-sum check and
	// the stated-amount consistency check.
	tolerance = decimal.New(1, -2) // 0.01
)

// buildSet turns validated inputs into a complete allocation set for the
// transaction, deriving the missing half of each (percentage, amount) pair.
//
// A single entry with neither percentage nor amount is shorthand for 100%
// of the transaction.
func buildSet(tx domain.Transaction, inputs []dto.AllocationInput) ([]domain.Allocation, error) {
	if len(inputs) == 1 && inputs[0].Percentage == nil && inputs[0].Amount == nil {
		return []domain.Allocation{{
			ID:              uuid.New(),
			TransactionID:   tx.ID,
			ProjectID:       inputs[0].ProjectID,
			ClientName:      inputs[0].ClientName,
			Percentage:      hundred,
			AmountAllocated: tx.Amount,
		}}, nil
	}

	sum := decimal.Zero
	out := make([]domain.Allocation, 0, len(inputs))
	for i, in := range inputs {
		pct, amt, err := resolveEntry(tx, in, i)
		if err != nil {
			return nil, err
		}
		sum = sum.Add(pct)
		out = append(out, domain.Allocation{
			ID:              uuid.New(),
			TransactionID:   tx.ID,
			ProjectID:       in.ProjectID,
			ClientName:      in.ClientName,
			Percentage:      pct,
			AmountAllocated: amt,
		})
	}

	if sum.Sub(hundred).Abs().GreaterThan(tolerance) {
		return nil, fmt.Errorf("%w: got %s%%", domain.ErrAllocationPercentageSum, sum)
	}
	return out, nil
}

// resolveEntry derives the (percentage, amount) pair of one entry.
func resolveEntry(
	tx domain.Transaction,
	in dto.AllocationInput,
	idx int,
) (pct, amt decimal.Decimal, err error) {
	switch {
	case in.Percentage != nil && in.Amount != nil:
		pct = in.Percentage.Round(4)
		implied := impliedAmount(tx.Amount, pct)
		if implied.Sub(*in.Amount).Abs().GreaterThan(tolerance) {
			err = fmt.Errorf("%w: entry %d states %s%% (implies %s) but amount %s",
				domain.ErrAllocationInconsistent, idx+1, pct, implied, in.Amount)
			return
		}
		amt = in.Amount.Round(2)

	case in.Percentage != nil:
		pct = in.Percentage.Round(4)
		amt = impliedAmount(tx.Amount, pct)

	case in.Amount != nil:
		amt = in.Amount.Round(2)
		pct = impliedPercentage(tx.Amount, amt)

	default:
		err = fmt.Errorf("%w: entry %d", domain.ErrAllocationEmpty, idx+1)
		return
	}

	if pct.IsNegative() || pct.GreaterThan(hundred) {
		err = fmt.Errorf("%w: entry %d percentage %s out of range [0, 100]",
			domain.ErrAllocationPercentageSum, idx+1, pct)
	}
	return
}

func impliedAmount(total, pct decimal.Decimal) decimal.Decimal {
	return total.Mul(pct).Div(hundred).Round(2)
}

// impliedPercentage derives a percentage from an amount share. A
// zero-amount transaction is wholly covered by a zero allocation.
func impliedPercentage(total, amt decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		if amt.IsZero() {
			return hundred
		}
		return decimal.Zero
	}
	return amt.Div(total).Mul(hundred).Round(4)
}
