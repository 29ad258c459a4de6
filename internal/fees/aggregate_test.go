package fees

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var (
	testNow  = time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC)
	testDues = [4]time.Time{
		time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC),
	}
)

func TestQuarterState(t *testing.T) {
	due := testDues[0] // already passed at testNow
	future := testDues[2]

	tests := []struct {
		name string
		owed string
		paid string
		due  time.Time
		want PaymentStatus
	}{
		{"fully paid", "250", "250", due, StatusPaid},
		{"overpaid", "250", "300", due, StatusPaid},
		{"unpaid past due", "250", "0", due, StatusOverdue},
		{"partial past due", "250", "100", due, StatusOverdue},
		{"unpaid before due", "250", "0", future, StatusPending},
		{"zero due date never overdue", "250", "0", time.Time{}, StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuarterState(dec(tt.owed), dec(tt.paid), tt.due, testNow); got != tt.want {
				t.Errorf("QuarterState = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStudentState(t *testing.T) {
	tests := []struct {
		name   string
		states [4]PaymentStatus
		want   PaymentStatus
	}{
		{"all paid", [4]PaymentStatus{StatusPaid, StatusPaid, StatusPaid, StatusPaid}, StatusPaid},
		{"overdue dominates", [4]PaymentStatus{StatusPaid, StatusOverdue, StatusPending, StatusPaid}, StatusOverdue},
		{"pending beats paid", [4]PaymentStatus{StatusPaid, StatusPaid, StatusPending, StatusPaid}, StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StudentState(tt.states); got != tt.want {
				t.Errorf("StudentState = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAggregateSection(t *testing.T) {
	owed := Quarters{dec("250"), dec("250"), dec("250"), dec("250")}
	ledgers := []StudentLedger{
		// Fully paid for Q1 and Q2; Q3/Q4 not due yet.
		{StudentID: 1, Name: "Asha", ClassName: "5", Section: "A",
			Paid: [4]decimal.Decimal{dec("250"), dec("250"), dec("0"), dec("0")}},
		// Q1 unpaid and past due.
		{StudentID: 2, Name: "Ravi", ClassName: "5", Section: "A",
			Paid: [4]decimal.Decimal{dec("0"), dec("250"), dec("0"), dec("0")}},
		// Partial on Q2.
		{StudentID: 3, Name: "Meera", ClassName: "5", Section: "A",
			Paid: [4]decimal.Decimal{dec("250"), dec("100"), dec("0"), dec("0")}},
	}

	agg := AggregateSection("5", "A", owed, testDues, ledgers, testNow)

	if agg.TotalStudents != 3 {
		t.Fatalf("TotalStudents = %d, want 3", agg.TotalStudents)
	}
	if !agg.TotalAmount.Equal(dec("3000")) {
		t.Errorf("TotalAmount = %s, want 3000", agg.TotalAmount)
	}
	if !agg.PaidAmount.Equal(dec("1100")) {
		t.Errorf("PaidAmount = %s, want 1100", agg.PaidAmount)
	}
	// Q1: Ravi owes 250. Q2: Meera owes 150. Both past due at testNow.
	if !agg.OverdueAmount.Equal(dec("400")) {
		t.Errorf("OverdueAmount = %s, want 400", agg.OverdueAmount)
	}
	// Q3 and Q4 are not yet due: 250 each for 3 students.
	if !agg.PendingAmount.Equal(dec("1500")) {
		t.Errorf("PendingAmount = %s, want 1500", agg.PendingAmount)
	}

	// Every student has Q3/Q4 pending; two also have an overdue quarter.
	if agg.OverdueStudents != 2 {
		t.Errorf("OverdueStudents = %d, want 2", agg.OverdueStudents)
	}
	if agg.PendingStudents != 1 {
		t.Errorf("PendingStudents = %d, want 1", agg.PendingStudents)
	}
	if agg.PaidStudents != 0 {
		t.Errorf("PaidStudents = %d, want 0", agg.PaidStudents)
	}

	if len(agg.Quarters) != 4 {
		t.Fatalf("Quarters len = %d, want 4", len(agg.Quarters))
	}
	q1 := agg.Quarters[0]
	if q1.PaidStudents != 2 || q1.OverdueStudents != 1 || q1.PendingStudents != 0 {
		t.Errorf("Q1 counts = %d/%d/%d paid/overdue/pending, want 2/1/0",
			q1.PaidStudents, q1.OverdueStudents, q1.PendingStudents)
	}
	if !q1.DueAmount.Equal(dec("750")) {
		t.Errorf("Q1 DueAmount = %s, want 750", q1.DueAmount)
	}
	q3 := agg.Quarters[2]
	if q3.PendingStudents != 3 || q3.OverdueStudents != 0 {
		t.Errorf("Q3 counts = %d pending / %d overdue, want 3/0", q3.PendingStudents, q3.OverdueStudents)
	}
}

func TestAggregateSectionEmpty(t *testing.T) {
	owed := Quarters{dec("250"), dec("250"), dec("250"), dec("250")}
	agg := AggregateSection("5", "B", owed, testDues, nil, testNow)
	if agg.TotalStudents != 0 {
		t.Errorf("TotalStudents = %d, want 0", agg.TotalStudents)
	}
	if !agg.TotalAmount.IsZero() {
		t.Errorf("TotalAmount = %s, want 0", agg.TotalAmount)
	}
}
