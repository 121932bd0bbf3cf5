package report

import (
	"context"
	"sort"
	"time"

	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/finsighthq/finsight/pkg/dto"
	"github.com/finsighthq/finsight/pkg/service/allocation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PLQuery selects the period and scope of a P&L statement.
type PLQuery struct {
	Start           time.Time
	End             time.Time
	ProjectID       *uuid.UUID
	ComparePrevious bool
	ExcludeVAT      bool
}

// BuildPLReport builds a full statement for the period: revenue, COGS,
// gross profit, operating expenses, operating income, other income and
// expenses, EBITDA and net income, with per-category line items. With
// ComparePrevious set, the statement for the equal-length immediately
// preceding period is attached.
func (s *Service) BuildPLReport(ctx context.Context, q PLQuery) (*dto.PLReport, error) {
	data, err := s.loadPeriod(ctx, q.Start, q.End)
	if err != nil {
		return nil, err
	}
	rep := s.buildFrom(data, q)

	if q.ComparePrevious {
		// The previous window ends one instant before the main one starts
		// and spans exactly as long, whatever time-of-day the bounds carry.
		span := q.End.Sub(q.Start)
		prevEnd := q.Start.Add(-time.Nanosecond)
		prevStart := prevEnd.Add(-span)

		prevData, err := s.loadPeriod(ctx, prevStart, prevEnd)
		if err != nil {
			return nil, err
		}
		prevQ := q
		prevQ.Start, prevQ.End, prevQ.ComparePrevious = prevStart, prevEnd, false
		rep.Previous = s.buildFrom(prevData, prevQ)
	}

	s.logger.Debug("P&L statement built",
		"start", q.Start, "end", q.End,
		"revenue", rep.Revenue, "net_income", rep.NetIncome)
	return rep, nil
}

func (s *Service) buildFrom(data *periodData, q PLQuery) *dto.PLReport {
	revenue := newSection()
	cogs := newSection()
	opex := newSection()
	otherInc := newSection()
	otherExp := newSection()
	var interest, taxes, depreciation decimal.Decimal

	for _, tx := range data.txs {
		amount, matched := contributionFor(tx, data, q)
		if !matched {
			continue
		}

		ctype := data.categoryTypeOf(tx)
		if ctype == "" {
			// Synthetic line: income when credit, operating expense when
			// debit; never part of a typed bucket. Placing debits in the
			// operating section is intentional: the operating subtotals
			// shift with them, which keeps net income closed over every
			// non-excluded P&L movement.
			if tx.Side == domain.Credit {
				revenue.add(nil, "Uncategorized", domain.TypeUncategorized, amount)
			} else {
				opex.add(nil, "Uncategorized", domain.TypeUncategorized, amount)
			}
			continue
		}

		name := data.categories[*tx.CategoryID].Name
		bucket := domain.BucketOf(ctype)
		wantSide := domain.Debit
		if bucket == domain.BucketIncome {
			wantSide = domain.Credit
		}
		if tx.Side != wantSide || bucket == domain.BucketNonPL {
			continue
		}

		switch {
		case ctype == domain.TypeOtherIncome:
			otherInc.add(tx.CategoryID, name, ctype, amount)
		case bucket == domain.BucketIncome:
			revenue.add(tx.CategoryID, name, ctype, amount)
		case ctype == domain.TypeCOGS:
			cogs.add(tx.CategoryID, name, ctype, amount)
		case bucket == domain.BucketOperatingExpense:
			opex.add(tx.CategoryID, name, ctype, amount)
		case bucket == domain.BucketBelowLine:
			otherExp.add(tx.CategoryID, name, ctype, amount)
			switch ctype {
			case domain.TypeInterest:
				interest = interest.Add(amount)
			case domain.TypeTaxes:
				taxes = taxes.Add(amount)
			case domain.TypeDepreciation:
				depreciation = depreciation.Add(amount)
			}
		}
	}

	grossProfit := revenue.total.Sub(cogs.total)
	operatingIncome := grossProfit.Sub(opex.total)
	// Net income: operating income less interest and taxes, plus other
	// income, less the remaining below-the-line expenses.
	otherExpRemainder := otherExp.total.Sub(interest).Sub(taxes)
	netIncome := operatingIncome.Sub(interest).Sub(taxes).
		Add(otherInc.total).Sub(otherExpRemainder)

	return &dto.PLReport{
		StartDate: q.Start,
		EndDate:   q.End,
		Currency:  s.currency,
		ProjectID: q.ProjectID,

		Revenue:      revenue.total,
		RevenueItems: revenue.lines(),

		COGS:      cogs.total,
		COGSItems: cogs.lines(),

		GrossProfit: grossProfit,
		GrossMargin: marginPct(grossProfit, revenue.total),

		OperatingExpenses: opex.total,
		OperatingItems:    opex.lines(),

		OperatingIncome: operatingIncome,
		OperatingMargin: marginPct(operatingIncome, revenue.total),

		OtherIncome:       otherInc.total,
		OtherIncomeItems:  otherInc.lines(),
		OtherExpenses:     otherExp.total,
		OtherExpenseItems: otherExp.lines(),

		Interest:     interest,
		Taxes:        taxes,
		Depreciation: depreciation,

		EBITDA:    operatingIncome.Add(depreciation),
		NetIncome: netIncome,
		NetMargin: marginPct(netIncome, revenue.total),
	}
}

// contributionFor returns the amount a transaction contributes under the
// query's project scope and whether it contributes at all.
func contributionFor(tx domain.Transaction, data *periodData, q PLQuery) (decimal.Decimal, bool) {
	if q.ProjectID == nil {
		return contribution(tx, tx.Amount, q.ExcludeVAT), true
	}
	sum := decimal.Zero
	matched := false
	for _, att := range allocation.Resolve(tx, data.allocations[tx.ID], data.projects) {
		if att.ProjectID == nil || *att.ProjectID != *q.ProjectID {
			continue
		}
		matched = true
		sum = sum.Add(contribution(tx, att.Amount, q.ExcludeVAT))
	}
	return sum, matched
}

// section accumulates one statement section's total and category lines.
type section struct {
	total decimal.Decimal
	items map[uuid.UUID]*dto.PLLineItem // uuid.Nil keys the synthetic line
}

func newSection() *section {
	return &section{total: decimal.Zero, items: make(map[uuid.UUID]*dto.PLLineItem)}
}

func (sec *section) add(catID *uuid.UUID, name string, ctype domain.CategoryType, amount decimal.Decimal) {
	key := uuid.Nil
	if catID != nil {
		key = *catID
	}
	item, ok := sec.items[key]
	if !ok {
		item = &dto.PLLineItem{CategoryID: catID, Name: name, Type: ctype, Amount: decimal.Zero}
		sec.items[key] = item
	}
	item.Amount = item.Amount.Add(amount)
	item.Count++
	sec.total = sec.total.Add(amount)
}

func (sec *section) lines() []dto.PLLineItem {
	out := make([]dto.PLLineItem, 0, len(sec.items))
	for _, item := range sec.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
