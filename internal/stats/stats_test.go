package stats

import (
	"testing"
	"time"

	"spendtrack/internal/core"
)

func expense(cents int64, category string, date time.Time) core.Expense {
	return core.Expense{
		Title:    category,
		Amount:   core.Money{Cents: cents},
		Category: category,
		Date:     date,
	}
}

func TestSummarizeEmptySet(t *testing.T) {
	today := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	s := Summarize(nil, core.Money{Cents: 10000}, today)

	if s.Total.Cents != 0 || s.Highest.Cents != 0 || s.AvgDaily.Cents != 0 {
		t.Fatalf("empty set should yield zero stats: %+v", s)
	}
	if s.Remaining.Cents != 10000 {
		t.Fatalf("remaining should equal the budget, got %d", s.Remaining.Cents)
	}
	if s.HasCharts() {
		t.Fatalf("empty set should omit both charts")
	}
	if len(s.Weekly) != WeeklyDays {
		t.Fatalf("weekly series should still have %d days, got %d", WeeklyDays, len(s.Weekly))
	}
}

// The worked example from the product brief: expenses of 20 (food, yesterday),
// 30 (food, 40 days ago) and 10 (transit, today) against a budget of 100.
func TestSummarizeScenario(t *testing.T) {
	today := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	expenses := []core.Expense{
		expense(2000, "food", today.AddDate(0, 0, -1)),
		expense(3000, "food", today.AddDate(0, 0, -40)),
		expense(1000, "transit", today),
	}

	s := Summarize(expenses, core.Money{Cents: 10000}, today)

	if s.Total.Cents != 6000 {
		t.Errorf("total: expected 6000, got %d", s.Total.Cents)
	}
	if s.Highest.Cents != 3000 {
		t.Errorf("highest: expected 3000, got %d", s.Highest.Cents)
	}
	// Only the 20 and 10 fall inside the 30-day window: (20+10)/2 = 15.00.
	if s.AvgDaily.Cents != 1500 {
		t.Errorf("avg daily: expected 1500, got %d", s.AvgDaily.Cents)
	}
	if s.Remaining.Cents != 4000 {
		t.Errorf("remaining: expected 4000, got %d", s.Remaining.Cents)
	}

	want := map[string]int64{"food": 5000, "transit": 1000}
	if len(s.ByCategory) != len(want) {
		t.Fatalf("expected %d categories, got %+v", len(want), s.ByCategory)
	}
	for _, ct := range s.ByCategory {
		if want[ct.Category] != ct.Total.Cents {
			t.Errorf("category %s: expected %d, got %d", ct.Category, want[ct.Category], ct.Total.Cents)
		}
	}
}

func TestSummarizeRemainingMayGoNegative(t *testing.T) {
	today := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	s := Summarize([]core.Expense{expense(25000, "rent", today)}, core.Money{Cents: 10000}, today)
	if s.Remaining.Cents != -15000 {
		t.Fatalf("expected -15000, got %d", s.Remaining.Cents)
	}
}

func TestSummarizeAvgDailyRounding(t *testing.T) {
	today := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	// (0.10 + 0.10 + 0.05) / 3 = 0.08333... -> 0.08
	expenses := []core.Expense{
		expense(10, "a", today),
		expense(10, "a", today),
		expense(5, "a", today),
	}
	s := Summarize(expenses, core.Money{}, today)
	if s.AvgDaily.Cents != 8 {
		t.Fatalf("expected 8 cents, got %d", s.AvgDaily.Cents)
	}
}

func TestWeeklySeries(t *testing.T) {
	// A Thursday; the series runs Friday(-6) through Thursday(0).
	today := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	expenses := []core.Expense{
		expense(1000, "food", today),                   // Thu, in window
		expense(500, "food", today.AddDate(0, 0, -6)),  // Fri, oldest day of window
		expense(700, "food", today.AddDate(0, 0, -7)),  // outside the window
		expense(300, "misc", today),                    // Thu again, same day sums
	}

	s := Summarize(expenses, core.Money{}, today)

	if len(s.Weekly) != 7 {
		t.Fatalf("expected 7 days, got %d", len(s.Weekly))
	}
	if s.Weekly[0].Label != "Fri" || s.Weekly[6].Label != "Thu" {
		t.Fatalf("expected Fri..Thu oldest first, got %s..%s", s.Weekly[0].Label, s.Weekly[6].Label)
	}
	if s.Weekly[0].Total.Cents != 500 {
		t.Errorf("oldest day: expected 500, got %d", s.Weekly[0].Total.Cents)
	}
	if s.Weekly[6].Total.Cents != 1300 {
		t.Errorf("today: expected 1300, got %d", s.Weekly[6].Total.Cents)
	}
	for i := 1; i < 6; i++ {
		if s.Weekly[i].Total.Cents != 0 {
			t.Errorf("day %d: expected 0, got %d", i, s.Weekly[i].Total.Cents)
		}
	}
}
