package charts

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"spendtrack/internal/core"
	"spendtrack/internal/stats"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func weeklyFixture() []stats.DayTotal {
	start := time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC)
	days := make([]stats.DayTotal, 7)
	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i] = stats.DayTotal{
			Date:  d,
			Label: d.Format("Mon"),
			Total: core.Money{Cents: int64(i) * 500},
		}
	}
	return days
}

func TestWeeklyLine(t *testing.T) {
	png, err := WeeklyLine(weeklyFixture())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Fatalf("expected PNG output, got %x", png[:8])
	}
}

func TestWeeklyLineFlatWeek(t *testing.T) {
	days := weeklyFixture()
	for i := range days {
		days[i].Total = core.Money{}
	}
	png, err := WeeklyLine(days)
	if err != nil {
		t.Fatalf("an all-zero week should still render: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Fatalf("expected PNG output")
	}
}

func TestWeeklyLineEmpty(t *testing.T) {
	if _, err := WeeklyLine(nil); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestCategoryDonut(t *testing.T) {
	png, err := CategoryDonut([]stats.CategoryTotal{
		{Category: "food", Total: core.Money{Cents: 5000}},
		{Category: "transit", Total: core.Money{Cents: 1000}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Fatalf("expected PNG output")
	}
}

func TestCategoryDonutEmpty(t *testing.T) {
	if _, err := CategoryDonut(nil); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}
