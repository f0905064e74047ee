package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"99999999.99", 9_999_999_999, true},
		{"100000000.00", 0, false}, // over 10 digits
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestParseBudgetAllowsZero(t *testing.T) {
	got, err := ParseBudget("0")
	if err != nil || got.Cents != 0 {
		t.Fatalf("expected 0 cents, got %d (err=%v)", got.Cents, err)
	}
	if _, err := ParseBudget("not-a-number"); err == nil {
		t.Fatalf("expected error for non-numeric budget")
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{100, "1.00"},
		{123, "1.23"},
		{5, "0.05"},
		{-4000, "-40.00"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("%d cents: expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestMoneySub(t *testing.T) {
	// Remaining budget may go negative and is not clamped.
	got := Money{Cents: 1000}.Sub(Money{Cents: 2500})
	if got.Cents != -1500 {
		t.Fatalf("expected -1500, got %d", got.Cents)
	}
}
