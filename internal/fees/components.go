package fees

import "github.com/shopspring/decimal"

// ServiceComponent is a named additional service contributing to a class's fee
// (transport, lab, activity and so on).
type ServiceComponent struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// ComponentSet groups the components that make up a class's total fee:
// tuition, the annual charge, and any number of named services.
type ComponentSet struct {
	Tuition  decimal.Decimal
	Annual   decimal.Decimal
	Services []ServiceComponent
}

// TotalFee sums all components. Plain addition — no weighting, no rounding,
// since every input is already a fixed-point amount.
func (c ComponentSet) TotalFee() decimal.Decimal {
	total := c.Tuition.Add(c.Annual)
	for _, s := range c.Services {
		total = total.Add(s.Amount)
	}
	return total
}
