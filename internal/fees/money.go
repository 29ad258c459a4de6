package fees

import "github.com/shopspring/decimal"

// smallestUnit is one paisa (0.01), the finest currency granularity the fee
// engine reasons about. Reconciliation tolerances are expressed in this unit.
var smallestUnit = decimal.New(1, -2)

var hundred = decimal.NewFromInt(100)

// Round2 rounds an amount to two decimal places, half away from zero.
// All derived fee amounts pass through this before being persisted.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// WithinSmallestUnit reports whether two amounts differ by at most one paisa.
func WithinSmallestUnit(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(smallestUnit)
}
