// Package stats computes the dashboard summary: totals, budget position and
// the two chart series, all from an already-filtered expense set.
package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"spendtrack/internal/core"
)

// averageWindowDays is the lookback for the daily-average figure.
const averageWindowDays = 30

// WeeklyDays is the number of calendar days covered by the weekly series.
const WeeklyDays = 7

type (
	// DayTotal is one point of the weekly series.
	DayTotal struct {
		Date  time.Time
		Label string // abbreviated weekday name
		Total core.Money
	}

	// CategoryTotal is one slice of the category breakdown.
	CategoryTotal struct {
		Category string
		Total    core.Money
	}

	// Summary is everything the dashboard shows for one filtered set.
	Summary struct {
		Total     core.Money
		Highest   core.Money
		AvgDaily  core.Money
		Budget    core.Money
		Remaining core.Money

		// Weekly covers the 7 calendar days ending today, oldest first,
		// summed over the full filtered set. ByCategory sums per distinct
		// category value, in order of first appearance.
		Weekly     []DayTotal
		ByCategory []CategoryTotal
	}
)

// HasCharts reports whether there is anything to draw. Both charts are
// omitted together when the filtered set is empty.
func (s Summary) HasCharts() bool {
	return len(s.ByCategory) > 0
}

// Summarize computes the dashboard numbers for a filtered expense set.
// today anchors the weekly series and the 30-day average window.
func Summarize(expenses []core.Expense, budget core.Money, today time.Time) Summary {
	s := Summary{
		Budget: budget,
		Weekly: weeklySeries(expenses, today),
	}

	var (
		windowStart = dateOnly(today).AddDate(0, 0, -averageWindowDays)
		windowEnd   = dateOnly(today)
		windowSum   int64
		windowCount int64
	)

	for _, e := range expenses {
		s.Total.Cents += e.Amount.Cents
		if e.Amount.Cents > s.Highest.Cents {
			s.Highest = e.Amount
		}
		d := dateOnly(e.Date)
		if !d.Before(windowStart) && !d.After(windowEnd) {
			windowSum += e.Amount.Cents
			windowCount++
		}
	}

	if windowCount > 0 {
		avg := decimal.NewFromInt(windowSum).
			Div(decimal.NewFromInt(windowCount)).
			Round(0)
		s.AvgDaily = core.Money{Cents: avg.IntPart()}
	}

	s.Remaining = budget.Sub(s.Total)
	s.ByCategory = categorySeries(expenses)
	return s
}

// weeklySeries sums per-day totals for the 7 calendar days ending today,
// oldest first.
func weeklySeries(expenses []core.Expense, today time.Time) []DayTotal {
	days := make([]DayTotal, WeeklyDays)
	totals := make(map[time.Time]int64, WeeklyDays)

	for i := 0; i < WeeklyDays; i++ {
		d := dateOnly(today).AddDate(0, 0, i-(WeeklyDays-1))
		days[i] = DayTotal{Date: d, Label: d.Format("Mon")}
		totals[d] = 0
	}

	for _, e := range expenses {
		d := dateOnly(e.Date)
		if _, ok := totals[d]; ok {
			totals[d] += e.Amount.Cents
		}
	}

	for i := range days {
		days[i].Total = core.Money{Cents: totals[days[i].Date]}
	}
	return days
}

// categorySeries sums per distinct category value, keeping the order in which
// categories first appear so the chart is stable for a given sort.
func categorySeries(expenses []core.Expense) []CategoryTotal {
	var (
		order  []string
		totals = make(map[string]int64)
	)
	for _, e := range expenses {
		if _, ok := totals[e.Category]; !ok {
			order = append(order, e.Category)
		}
		totals[e.Category] += e.Amount.Cents
	}

	series := make([]CategoryTotal, 0, len(order))
	for _, c := range order {
		series = append(series, CategoryTotal{Category: c, Total: core.Money{Cents: totals[c]}})
	}
	return series
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
