package model

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/fees"
)

// FeeStructure is the per-class fee definition. TotalFee is derived from the
// component sum; Q1..Q4 always reconcile with it exactly (enforced at write
// time).
type FeeStructure struct {
	ID        int                     `json:"id"`
	ClassName string                  `json:"class_name"`
	Tuition   decimal.Decimal         `json:"tuition"`
	Annual    decimal.Decimal         `json:"annual"`
	TotalFee  decimal.Decimal         `json:"total_fee"`
	Q1        decimal.Decimal         `json:"q1"`
	Q2        decimal.Decimal         `json:"q2"`
	Q3        decimal.Decimal         `json:"q3"`
	Q4        decimal.Decimal         `json:"q4"`
	Services  []fees.ServiceComponent `json:"services"`
	Notes     string                  `json:"notes,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// Quarters returns the structure's installments as a fees.Quarters.
func (f *FeeStructure) Quarters() fees.Quarters {
	return fees.Quarters{f.Q1, f.Q2, f.Q3, f.Q4}
}

// QuartersInput carries caller-computed quarterly amounts.
type QuartersInput struct {
	Q1 decimal.Decimal `json:"q1"`
	Q2 decimal.Decimal `json:"q2"`
	Q3 decimal.Decimal `json:"q3"`
	Q4 decimal.Decimal `json:"q4"`
}

// Quarters converts the input to a fees.Quarters.
func (q QuartersInput) Quarters() fees.Quarters {
	return fees.Quarters{q.Q1, q.Q2, q.Q3, q.Q4}
}

// FeeStructureRequest is the payload for creating or updating a class's fee
// structure. When Quarters is nil the service derives an equal distribution;
// when supplied the quarters must reconcile with the component total.
type FeeStructureRequest struct {
	ClassName string                  `json:"class_name" binding:"required,min=1,max=100"`
	Tuition   decimal.Decimal         `json:"tuition" binding:"required"`
	Annual    decimal.Decimal         `json:"annual"`
	Services  []fees.ServiceComponent `json:"services" binding:"omitempty,dive"`
	Quarters  *QuartersInput          `json:"quarters" binding:"omitempty"`
	Notes     string                  `json:"notes" binding:"omitempty,max=1000"`
}

// CalculateQuartersRequest is the payload for the quarter-split utility.
type CalculateQuartersRequest struct {
	TotalAmount        decimal.Decimal `json:"total_amount" binding:"required"`
	DistributionType   string          `json:"distribution_type" binding:"required,oneof=equal custom"`
	CustomDistribution *QuartersInput  `json:"custom_distribution" binding:"omitempty"`
}

// CalculateQuartersResponse is the utility's output; the four parts always sum
// to Total exactly.
type CalculateQuartersResponse struct {
	Q1    decimal.Decimal `json:"q1"`
	Q2    decimal.Decimal `json:"q2"`
	Q3    decimal.Decimal `json:"q3"`
	Q4    decimal.Decimal `json:"q4"`
	Total decimal.Decimal `json:"total"`
}

// FeePayment is one ledger entry: a payment by a student against one quarter.
// The ledger is written by the external payment flow; the core only reads it.
type FeePayment struct {
	ID        int             `json:"id"`
	StudentID int             `json:"student_id"`
	Quarter   int             `json:"quarter"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paid_at"`
}

// ClassWisePaymentsFilter narrows the class-wise payment aggregate.
type ClassWisePaymentsFilter struct {
	ClassName string
	Section   string
	Quarter   int                // 0 means all quarters
	Status    fees.PaymentStatus // empty means all statuses
}
