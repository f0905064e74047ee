// Package charts renders the dashboard's chart images. Everything is drawn
// per request into an in-memory buffer; nothing is written to shared files,
// so concurrent users cannot see each other's charts.
package charts

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"spendtrack/internal/stats"
)

var ErrNoData = errors.New("no data to chart")

const (
	lineWidth  = 640
	lineHeight = 360
	ringSize   = 400
)

// WeeklyLine renders the 7-day spending trend as a PNG line chart. The series
// is expected oldest first, as produced by stats.Summarize.
func WeeklyLine(series []stats.DayTotal) ([]byte, error) {
	if len(series) == 0 {
		return nil, ErrNoData
	}

	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	ticks := make([]chart.Tick, len(series))
	yMax := 1.0
	for i, d := range series {
		xs[i] = float64(i)
		ys[i] = d.Total.Float64()
		ticks[i] = chart.Tick{Value: float64(i), Label: d.Label}
		if ys[i] > yMax {
			yMax = ys[i]
		}
	}

	graph := chart.Chart{
		Title:  "Weekly Spending Trend",
		Width:  lineWidth,
		Height: lineHeight,
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			// Flat all-zero weeks would otherwise collapse the value range.
			Range: &chart.ContinuousRange{Min: 0, Max: yMax * 1.1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: 2.5,
					DotWidth:    4,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render weekly chart: %w", err)
	}
	return buf.Bytes(), nil
}

// CategoryDonut renders the category breakdown as a PNG ring chart.
func CategoryDonut(series []stats.CategoryTotal) ([]byte, error) {
	if len(series) == 0 {
		return nil, ErrNoData
	}

	values := make([]chart.Value, 0, len(series))
	for _, ct := range series {
		if ct.Total.Cents <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: ct.Total.Float64(),
			Label: ct.Category,
		})
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}

	graph := chart.DonutChart{
		Title:  "Expenses by Category",
		Width:  ringSize,
		Height: ringSize,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render category chart: %w", err)
	}
	return buf.Bytes(), nil
}
