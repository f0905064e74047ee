// Money parsing and formatting. Amounts are stored as integer cents and only
// converted through shopspring/decimal at the edges to avoid float drift.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a currency amount in cents.
type Money struct {
	Cents int64
}

// DefaultMonthlyBudget is assigned to new accounts until the user changes it.
var DefaultMonthlyBudget = Money{Cents: 50000_00}

// maxAmountCents caps amounts at 10 significant digits, 2 of which are the
// decimal places (99,999,999.99 at most).
const maxAmountCents = 9_999_999_999

// ParseAmount converts a decimal string to Money with half-up rounding on the
// third decimal place. Both "12.34" and "12,34" are accepted. Amounts must be
// strictly positive and fit in 10 digits.
func ParseAmount(s string) (Money, error) {
	m, err := parseMoney(s)
	if err != nil {
		return Money{}, err
	}
	if m.Cents <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return m, nil
}

// ParseBudget is ParseAmount but permits zero, since a budget of 0 is a valid
// (if austere) choice.
func ParseBudget(s string) (Money, error) {
	return parseMoney(s)
}

func parseMoney(s string) (Money, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Shift(2).Round(0)
	if !cents.IsInteger() || cents.Sign() < 0 {
		return Money{}, ErrInvalidAmount
	}
	v := cents.IntPart()
	if v > maxAmountCents {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: v}, nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 || m.Cents > maxAmountCents {
		return ErrInvalidAmount
	}
	return nil
}

// Decimal returns the amount as a decimal value in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Float64 returns the currency value for chart rendering. Calculations should
// stay on cents or Decimal.
func (m Money) Float64() float64 {
	return float64(m.Cents) / 100.0
}

// String formats the amount as "1234.56".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Sub returns m minus other. The result may be negative.
func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}

// Add returns the sum of m and other.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}
