package kpi

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/finsighthq/finsight/pkg/dto"
	"github.com/finsighthq/finsight/pkg/service/report"
	"github.com/shopspring/decimal"
)

// Interval is the sub-period granularity of a trend series.
type Interval string

const (
	Monthly   Interval = "monthly"
	Quarterly Interval = "quarterly"
	Yearly    Interval = "yearly"
)

// Trend metrics.
const (
	MetricRevenue         = "revenue"
	MetricNetIncome       = "net_income"
	MetricGrossProfit     = "gross_profit"
	MetricOperatingIncome = "operating_income"
	MetricEBITDA          = "ebitda"
)

// trendStable is the absolute tolerance below which two consecutive
// observations count as equal.
var trendStable = decimal.New(1, -2) // 0.01

// Trend builds a period-over-period series of one statement metric. The
// direction compares the last two points; the growth rate is the compound
// rate across the whole series.
func (s *Service) Trend(
	ctx context.Context,
	start, end time.Time,
	interval Interval,
	metric string,
) (*dto.TrendSeries, error) {
	if metric == "" {
		metric = MetricRevenue
	}
	if !validMetric(metric) {
		return nil, fmt.Errorf("unknown trend metric %q", metric)
	}

	series := &dto.TrendSeries{Metric: metric, Interval: string(interval)}
	for _, p := range subPeriods(start, end, interval) {
		rep, err := s.reports.BuildPLReport(ctx, report.PLQuery{Start: p.start, End: p.end})
		if err != nil {
			return nil, err
		}
		series.Points = append(series.Points, dto.TrendPoint{
			PeriodStart: p.start,
			PeriodEnd:   p.end,
			Label:       p.label,
			Value:       metricValue(rep, metric),
		})
	}

	series.Direction = direction(series.Points)
	series.GrowthRate = compoundGrowth(series.Points)
	return series, nil
}

func validMetric(metric string) bool {
	switch metric {
	case MetricRevenue, MetricNetIncome, MetricGrossProfit, MetricOperatingIncome, MetricEBITDA:
		return true
	}
	return false
}

func metricValue(rep *dto.PLReport, metric string) decimal.Decimal {
	switch metric {
	case MetricNetIncome:
		return rep.NetIncome
	case MetricGrossProfit:
		return rep.GrossProfit
	case MetricOperatingIncome:
		return rep.OperatingIncome
	case MetricEBITDA:
		return rep.EBITDA
	default:
		return rep.Revenue
	}
}

type period struct {
	start time.Time
	end   time.Time
	label string
}

// subPeriods splits [start, end] into calendar sub-periods clipped to the
// range.
func subPeriods(start, end time.Time, interval Interval) []period {
	var out []period
	cursor := periodStart(start, interval)
	for !cursor.After(end) {
		next := advance(cursor, interval)
		p := period{start: cursor, end: next.AddDate(0, 0, -1), label: label(cursor, interval)}
		if p.start.Before(start) {
			p.start = start
		}
		if p.end.After(end) {
			p.end = end
		}
		out = append(out, p)
		cursor = next
	}
	return out
}

func periodStart(t time.Time, interval Interval) time.Time {
	switch interval {
	case Yearly:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	case Quarterly:
		q := (int(t.Month()) - 1) / 3
		return time.Date(t.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
}

func advance(t time.Time, interval Interval) time.Time {
	switch interval {
	case Yearly:
		return t.AddDate(1, 0, 0)
	case Quarterly:
		return t.AddDate(0, 3, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

func label(t time.Time, interval Interval) string {
	switch interval {
	case Yearly:
		return fmt.Sprintf("%d", t.Year())
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
	default:
		return t.Format("2006-01")
	}
}

func direction(points []dto.TrendPoint) string {
	if len(points) < 2 {
		return "stable"
	}
	last := points[len(points)-1].Value
	prev := points[len(points)-2].Value
	diff := last.Sub(prev)
	switch {
	case diff.Abs().LessThanOrEqual(trendStable):
		return "stable"
	case diff.IsPositive():
		return "up"
	default:
		return "down"
	}
}

// compoundGrowth returns the per-period compound growth rate in percent
// across the series, 0 when the series is too short or starts at or below
// zero.
func compoundGrowth(points []dto.TrendPoint) decimal.Decimal {
	if len(points) < 2 {
		return decimal.Zero
	}
	first, _ := points[0].Value.Float64()
	last, _ := points[len(points)-1].Value.Float64()
	if first <= 0 || last <= 0 {
		return decimal.Zero
	}
	rate := math.Pow(last/first, 1/float64(len(points)-1)) - 1
	return decimal.NewFromFloat(rate * 100).Round(2)
}
