package fees

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Domain Errors
var (
	ErrInvalidAmount       = errors.New("total amount must be greater than zero")
	ErrInvalidDistribution = errors.New("custom percentages must sum to 100")
)

// DistributionType selects the quarterly split policy.
type DistributionType string

const (
	DistributionEqual  DistributionType = "equal"
	DistributionCustom DistributionType = "custom"
)

// percentTolerance is how far a custom percentage set may drift from 100.
var percentTolerance = decimal.NewFromFloat(0.01)

// Quarters holds the four installment amounts in order Q1..Q4.
type Quarters [4]decimal.Decimal

// Sum returns q1+q2+q3+q4.
func (q Quarters) Sum() decimal.Decimal {
	return q[0].Add(q[1]).Add(q[2]).Add(q[3])
}

// Add returns the element-wise sum of two quarter sets.
func (q Quarters) Add(o Quarters) Quarters {
	return Quarters{q[0].Add(o[0]), q[1].Add(o[1]), q[2].Add(o[2]), q[3].Add(o[3])}
}

// Policy describes how a total is split across the four quarters.
type Policy struct {
	Type DistributionType
	// Percentages apply only to DistributionCustom, in order Q1..Q4.
	Percentages [4]decimal.Decimal
}

// EqualPolicy splits the total into four equal shares.
func EqualPolicy() Policy {
	return Policy{Type: DistributionEqual}
}

// CustomPolicy splits the total by the given percentages, which must sum to 100.
func CustomPolicy(p1, p2, p3, p4 decimal.Decimal) Policy {
	return Policy{Type: DistributionCustom, Percentages: [4]decimal.Decimal{p1, p2, p3, p4}}
}

// Distribute splits total into four quarterly installments under the policy.
// Q1..Q3 are rounded to two decimals; Q4 is total minus the first three, so the
// rounding remainder lands entirely in the fourth quarter and the parts always
// sum to the total exactly.
func Distribute(total decimal.Decimal, p Policy) (Quarters, error) {
	if total.LessThanOrEqual(decimal.Zero) {
		return Quarters{}, ErrInvalidAmount
	}

	var q Quarters
	switch p.Type {
	case DistributionCustom:
		sum := decimal.Zero
		for _, pct := range p.Percentages {
			if pct.IsNegative() {
				return Quarters{}, ErrInvalidDistribution
			}
			sum = sum.Add(pct)
		}
		if sum.Sub(hundred).Abs().GreaterThan(percentTolerance) {
			return Quarters{}, ErrInvalidDistribution
		}
		for i := 0; i < 3; i++ {
			q[i] = Round2(total.Mul(p.Percentages[i]).Div(hundred))
		}
	default:
		share := Round2(total.Div(decimal.NewFromInt(4)))
		q[0], q[1], q[2] = share, share, share
	}

	q[3] = total.Sub(q[0]).Sub(q[1]).Sub(q[2])
	return q, nil
}
