package fees

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus classifies how far along a student (or one of their quarters)
// is against the amounts owed.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "paid"
	StatusPending PaymentStatus = "pending"
	StatusOverdue PaymentStatus = "overdue"
)

// StudentLedger is one student's per-quarter paid totals, as read from the
// payment ledger. The ledger itself is an external collaborator; this package
// only reduces its rows.
type StudentLedger struct {
	StudentID int                `json:"student_id"`
	Name      string             `json:"name"`
	ClassName string             `json:"class_name"`
	Section   string             `json:"section"`
	Paid      [4]decimal.Decimal `json:"paid"`
}

// QuarterBreakdown is the paid/pending/overdue reduction for one quarter of
// one (class, section) group.
type QuarterBreakdown struct {
	Quarter         int             `json:"quarter"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	DueAmount       decimal.Decimal `json:"due_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	PendingAmount   decimal.Decimal `json:"pending_amount"`
	OverdueAmount   decimal.Decimal `json:"overdue_amount"`
	PaidStudents    int             `json:"paid_students"`
	PendingStudents int             `json:"pending_students"`
	OverdueStudents int             `json:"overdue_students"`
}

// SectionAggregate is the derived payment picture for one (class, section)
// group. It is a read model, recomputed on every request, never stored.
type SectionAggregate struct {
	ClassName       string             `json:"class_name"`
	Section         string             `json:"section"`
	TotalStudents   int                `json:"total_students"`
	PaidStudents    int                `json:"paid_students"`
	PendingStudents int                `json:"pending_students"`
	OverdueStudents int                `json:"overdue_students"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	PaidAmount      decimal.Decimal    `json:"paid_amount"`
	PendingAmount   decimal.Decimal    `json:"pending_amount"`
	OverdueAmount   decimal.Decimal    `json:"overdue_amount"`
	Quarters        []QuarterBreakdown `json:"quarters"`
}

// QuarterState classifies a single quarter for a single student: paid when
// payments cover the owed amount, overdue when the due date has passed with an
// uncovered balance, pending otherwise. A zero due date never becomes overdue.
func QuarterState(owed, paid decimal.Decimal, due, now time.Time) PaymentStatus {
	if paid.GreaterThanOrEqual(owed) {
		return StatusPaid
	}
	if !due.IsZero() && now.After(due) {
		return StatusOverdue
	}
	return StatusPending
}

// StudentState folds a student's four quarter states into one overall status:
// overdue dominates, then pending, then paid.
func StudentState(states [4]PaymentStatus) PaymentStatus {
	overall := StatusPaid
	for _, s := range states {
		if s == StatusOverdue {
			return StatusOverdue
		}
		if s == StatusPending {
			overall = StatusPending
		}
	}
	return overall
}

// AggregateSection reduces a section's student ledgers against the per-quarter
// owed amounts into a SectionAggregate. owed is the class fee-structure
// quarters plus any active section extra fees, per student.
func AggregateSection(className, section string, owed Quarters, due [4]time.Time, ledgers []StudentLedger, now time.Time) SectionAggregate {
	agg := SectionAggregate{
		ClassName:     className,
		Section:       section,
		TotalStudents: len(ledgers),
		TotalAmount:   owed.Sum().Mul(decimal.NewFromInt(int64(len(ledgers)))),
		PaidAmount:    decimal.Zero,
		PendingAmount: decimal.Zero,
		OverdueAmount: decimal.Zero,
		Quarters:      make([]QuarterBreakdown, 4),
	}

	for i := range agg.Quarters {
		agg.Quarters[i] = QuarterBreakdown{
			Quarter:       i + 1,
			DueAmount:     owed[i].Mul(decimal.NewFromInt(int64(len(ledgers)))),
			PaidAmount:    decimal.Zero,
			PendingAmount: decimal.Zero,
			OverdueAmount: decimal.Zero,
		}
		if !due[i].IsZero() {
			d := due[i]
			agg.Quarters[i].DueDate = &d
		}
	}

	for _, led := range ledgers {
		var states [4]PaymentStatus
		for i := 0; i < 4; i++ {
			states[i] = QuarterState(owed[i], led.Paid[i], due[i], now)
			outstanding := owed[i].Sub(led.Paid[i])
			if outstanding.IsNegative() {
				outstanding = decimal.Zero
			}

			qb := &agg.Quarters[i]
			qb.PaidAmount = qb.PaidAmount.Add(led.Paid[i])
			agg.PaidAmount = agg.PaidAmount.Add(led.Paid[i])

			switch states[i] {
			case StatusPaid:
				qb.PaidStudents++
			case StatusOverdue:
				qb.OverdueStudents++
				qb.OverdueAmount = qb.OverdueAmount.Add(outstanding)
				agg.OverdueAmount = agg.OverdueAmount.Add(outstanding)
			default:
				qb.PendingStudents++
				qb.PendingAmount = qb.PendingAmount.Add(outstanding)
				agg.PendingAmount = agg.PendingAmount.Add(outstanding)
			}
		}

		switch StudentState(states) {
		case StatusPaid:
			agg.PaidStudents++
		case StatusOverdue:
			agg.OverdueStudents++
		default:
			agg.PendingStudents++
		}
	}

	return agg
}
