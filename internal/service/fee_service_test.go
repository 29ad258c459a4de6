package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/fees"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var feeDueDates = [4]time.Time{
	time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
	time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
	time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC),
	time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC),
}

type feeFixture struct {
	svc        *FeeService
	structures *fakeFeeStructureStore
	sections   *fakeSectionFeeStore
	ledgers    *fakeLedgerStore
}

func newFeeFixture() *feeFixture {
	structures := newFakeFeeStructureStore()
	sections := newFakeSectionFeeStore()
	ledgers := &fakeLedgerStore{}
	svc := NewFeeService(structures, sections, ledgers, feeDueDates, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC) }
	return &feeFixture{svc: svc, structures: structures, sections: sections, ledgers: ledgers}
}

func TestCreateStructureDerivesTotalAndQuarters(t *testing.T) {
	f := newFeeFixture()

	got, err := f.svc.CreateStructure(context.Background(), &model.FeeStructureRequest{
		ClassName: "5",
		Tuition:   dec("3000"),
		Annual:    dec("1000"),
		Services: []fees.ServiceComponent{
			{Name: "transport", Amount: dec("200")},
			{Name: "lab", Amount: dec("300")},
		},
	})
	if err != nil {
		t.Fatalf("CreateStructure error: %v", err)
	}

	if !got.TotalFee.Equal(dec("4500")) {
		t.Errorf("TotalFee = %s, want 4500", got.TotalFee)
	}
	for i, q := range got.Quarters() {
		if !q.Equal(dec("1125")) {
			t.Errorf("q%d = %s, want 1125", i+1, q)
		}
	}
}

func TestCreateStructureExplicitQuarters(t *testing.T) {
	f := newFeeFixture()

	got, err := f.svc.CreateStructure(context.Background(), &model.FeeStructureRequest{
		ClassName: "6",
		Tuition:   dec("1000"),
		Quarters:  &model.QuartersInput{Q1: dec("400"), Q2: dec("300"), Q3: dec("200"), Q4: dec("100")},
	})
	if err != nil {
		t.Fatalf("CreateStructure error: %v", err)
	}
	if !got.Q1.Equal(dec("400")) || !got.Q4.Equal(dec("100")) {
		t.Errorf("quarters = %s..%s, want 400..100", got.Q1, got.Q4)
	}
}

func TestCreateStructureInconsistentQuarters(t *testing.T) {
	f := newFeeFixture()

	_, err := f.svc.CreateStructure(context.Background(), &model.FeeStructureRequest{
		ClassName: "6",
		Tuition:   dec("1000"),
		Quarters:  &model.QuartersInput{Q1: dec("400"), Q2: dec("300"), Q3: dec("200"), Q4: dec("50")},
	})
	if !errors.Is(err, ErrInconsistentQuarters) {
		t.Errorf("err = %v, want ErrInconsistentQuarters", err)
	}
}

func TestCreateStructureDuplicateClass(t *testing.T) {
	f := newFeeFixture()
	ctx := context.Background()
	req := &model.FeeStructureRequest{ClassName: "5", Tuition: dec("1000")}

	if _, err := f.svc.CreateStructure(ctx, req); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.CreateStructure(ctx, req); !errors.Is(err, ErrDuplicateClass) {
		t.Errorf("err = %v, want ErrDuplicateClass", err)
	}
}

func TestUpdateStructureMissing(t *testing.T) {
	f := newFeeFixture()
	_, err := f.svc.UpdateStructure(context.Background(), &model.FeeStructureRequest{
		ClassName: "404", Tuition: dec("1000"),
	})
	if !errors.Is(err, ErrStructureNotFound) {
		t.Errorf("err = %v, want ErrStructureNotFound", err)
	}
}

func TestCalculateQuarters(t *testing.T) {
	f := newFeeFixture()

	resp, err := f.svc.CalculateQuarters(&model.CalculateQuartersRequest{
		TotalAmount:      dec("1000.01"),
		DistributionType: "equal",
	})
	if err != nil {
		t.Fatalf("CalculateQuarters error: %v", err)
	}
	if !resp.Q4.Equal(dec("250.01")) {
		t.Errorf("Q4 = %s, want 250.01", resp.Q4)
	}
	if !resp.Total.Equal(dec("1000.01")) {
		t.Errorf("Total = %s, want 1000.01", resp.Total)
	}
}

func TestCalculateQuartersCustom(t *testing.T) {
	f := newFeeFixture()

	resp, err := f.svc.CalculateQuarters(&model.CalculateQuartersRequest{
		TotalAmount:        dec("1000"),
		DistributionType:   "custom",
		CustomDistribution: &model.QuartersInput{Q1: dec("40"), Q2: dec("30"), Q3: dec("20"), Q4: dec("10")},
	})
	if err != nil {
		t.Fatalf("CalculateQuarters error: %v", err)
	}
	if !resp.Q1.Equal(dec("400")) || !resp.Q4.Equal(dec("100")) {
		t.Errorf("quarters = %s..%s, want 400..100", resp.Q1, resp.Q4)
	}
}

func TestCalculateQuartersBadCustom(t *testing.T) {
	f := newFeeFixture()

	_, err := f.svc.CalculateQuarters(&model.CalculateQuartersRequest{
		TotalAmount:        dec("1000"),
		DistributionType:   "custom",
		CustomDistribution: &model.QuartersInput{Q1: dec("25"), Q2: dec("25"), Q3: dec("25"), Q4: dec("24.99")},
	})
	if !errors.Is(err, fees.ErrInvalidDistribution) {
		t.Errorf("err = %v, want ErrInvalidDistribution", err)
	}

	_, err = f.svc.CalculateQuarters(&model.CalculateQuartersRequest{
		TotalAmount:      dec("0"),
		DistributionType: "equal",
	})
	if !errors.Is(err, fees.ErrInvalidAmount) {
		t.Errorf("err = %v, want ErrInvalidAmount", err)
	}
}

func TestSectionFeeLifecycle(t *testing.T) {
	f := newFeeFixture()
	ctx := context.Background()

	fee, err := f.svc.CreateSectionFee(ctx, &model.SectionExtraFeeRequest{
		ClassName: "5", Section: "A", ServiceName: "smart-class", Amount: dec("400"),
	}, 11)
	if err != nil {
		t.Fatalf("CreateSectionFee error: %v", err)
	}
	if !fee.IsActive {
		t.Error("IsActive should default to true")
	}
	if !fee.Q1.Equal(dec("100")) || !fee.Q4.Equal(dec("100")) {
		t.Errorf("quarters = %s..%s, want equal 100s", fee.Q1, fee.Q4)
	}
	if fee.CreatedBy != 11 {
		t.Errorf("CreatedBy = %d, want 11", fee.CreatedBy)
	}

	// Same service name for the same section conflicts.
	_, err = f.svc.CreateSectionFee(ctx, &model.SectionExtraFeeRequest{
		ClassName: "5", Section: "A", ServiceName: "smart-class", Amount: dec("500"),
	}, 11)
	if !errors.Is(err, ErrDuplicateSectionFee) {
		t.Errorf("err = %v, want ErrDuplicateSectionFee", err)
	}

	// A different section may carry the same service.
	if _, err := f.svc.CreateSectionFee(ctx, &model.SectionExtraFeeRequest{
		ClassName: "5", Section: "B", ServiceName: "smart-class", Amount: dec("500"),
	}, 11); err != nil {
		t.Fatalf("sibling section create error: %v", err)
	}

	inactive := false
	updated, err := f.svc.UpdateSectionFee(ctx, fee.ID, &model.SectionExtraFeeRequest{
		ClassName: "5", Section: "A", ServiceName: "smart-class", Amount: dec("400"), IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("UpdateSectionFee error: %v", err)
	}
	if updated.IsActive {
		t.Error("IsActive should be false after update")
	}

	if err := f.svc.DeleteSectionFee(ctx, fee.ID); err != nil {
		t.Fatalf("DeleteSectionFee error: %v", err)
	}
	if err := f.svc.DeleteSectionFee(ctx, fee.ID); !errors.Is(err, ErrSectionFeeNotFound) {
		t.Errorf("second delete err = %v, want ErrSectionFeeNotFound", err)
	}
}

func TestSectionFeeInconsistentQuarters(t *testing.T) {
	f := newFeeFixture()
	_, err := f.svc.CreateSectionFee(context.Background(), &model.SectionExtraFeeRequest{
		ClassName: "5", Section: "A", ServiceName: "transport", Amount: dec("400"),
		Quarters: &model.QuartersInput{Q1: dec("100"), Q2: dec("100"), Q3: dec("100"), Q4: dec("50")},
	}, 1)
	if !errors.Is(err, ErrInconsistentQuarters) {
		t.Errorf("err = %v, want ErrInconsistentQuarters", err)
	}
}

func seedClassWise(t *testing.T, f *feeFixture) {
	t.Helper()
	ctx := context.Background()

	if _, err := f.svc.CreateStructure(ctx, &model.FeeStructureRequest{
		ClassName: "5", Tuition: dec("4000"),
	}); err != nil {
		t.Fatal(err)
	}
	// Section A carries an extra 400/year (100 per quarter); section B none.
	if _, err := f.svc.CreateSectionFee(ctx, &model.SectionExtraFeeRequest{
		ClassName: "5", Section: "A", ServiceName: "smart-class", Amount: dec("400"),
	}, 1); err != nil {
		t.Fatal(err)
	}

	f.ledgers.ledgers = []fees.StudentLedger{
		// Section A: owes 1100/quarter. Paid through Q2.
		{StudentID: 1, Name: "Asha", ClassName: "5", Section: "A",
			Paid: [4]decimal.Decimal{dec("1100"), dec("1100"), decimal.Zero, decimal.Zero}},
		// Section A: nothing paid, Q1/Q2 overdue at the fixture clock.
		{StudentID: 2, Name: "Ravi", ClassName: "5", Section: "A",
			Paid: [4]decimal.Decimal{decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero}},
		// Section B: owes 1000/quarter, paid through Q2.
		{StudentID: 3, Name: "Meera", ClassName: "5", Section: "B",
			Paid: [4]decimal.Decimal{dec("1000"), dec("1000"), decimal.Zero, decimal.Zero}},
	}
}

func TestClassWisePayments(t *testing.T) {
	f := newFeeFixture()
	seedClassWise(t, f)

	aggs, err := f.svc.ClassWisePayments(context.Background(), model.ClassWisePaymentsFilter{ClassName: "5"})
	if err != nil {
		t.Fatalf("ClassWisePayments error: %v", err)
	}
	if len(aggs) != 2 {
		t.Fatalf("aggregates = %d, want 2 sections", len(aggs))
	}

	a, b := aggs[0], aggs[1]
	if a.Section != "A" || b.Section != "B" {
		t.Fatalf("sections = %s/%s, want A/B", a.Section, b.Section)
	}

	// Section A: 2 students × (1000 + 100 extra) × 4 quarters.
	if !a.TotalAmount.Equal(dec("8800")) {
		t.Errorf("A TotalAmount = %s, want 8800", a.TotalAmount)
	}
	if !a.PaidAmount.Equal(dec("2200")) {
		t.Errorf("A PaidAmount = %s, want 2200", a.PaidAmount)
	}
	// Ravi owes 1100 for each of Q1 and Q2, both past due.
	if !a.OverdueAmount.Equal(dec("2200")) {
		t.Errorf("A OverdueAmount = %s, want 2200", a.OverdueAmount)
	}
	if a.OverdueStudents != 1 || a.PendingStudents != 1 {
		t.Errorf("A students = %d overdue / %d pending, want 1/1", a.OverdueStudents, a.PendingStudents)
	}

	// Section B gets no extra fee: 1 student × 1000 × 4.
	if !b.TotalAmount.Equal(dec("4000")) {
		t.Errorf("B TotalAmount = %s, want 4000", b.TotalAmount)
	}
	if b.OverdueStudents != 0 || b.PendingStudents != 1 {
		t.Errorf("B students = %d overdue / %d pending, want 0/1", b.OverdueStudents, b.PendingStudents)
	}
}

func TestClassWisePaymentsQuarterFilter(t *testing.T) {
	f := newFeeFixture()
	seedClassWise(t, f)

	aggs, err := f.svc.ClassWisePayments(context.Background(), model.ClassWisePaymentsFilter{
		ClassName: "5", Section: "A", Quarter: 1,
	})
	if err != nil {
		t.Fatalf("ClassWisePayments error: %v", err)
	}
	if len(aggs) != 1 {
		t.Fatalf("aggregates = %d, want 1", len(aggs))
	}
	if len(aggs[0].Quarters) != 1 || aggs[0].Quarters[0].Quarter != 1 {
		t.Errorf("breakdown = %+v, want only quarter 1", aggs[0].Quarters)
	}
}

func TestClassWisePaymentsInactiveExtraIgnored(t *testing.T) {
	f := newFeeFixture()
	seedClassWise(t, f)

	// Deactivate the section A extra; owed drops back to the class quarters.
	inactive := false
	if _, err := f.svc.UpdateSectionFee(context.Background(), 1, &model.SectionExtraFeeRequest{
		ClassName: "5", Section: "A", ServiceName: "smart-class", Amount: dec("400"), IsActive: &inactive,
	}); err != nil {
		t.Fatal(err)
	}

	aggs, err := f.svc.ClassWisePayments(context.Background(), model.ClassWisePaymentsFilter{
		ClassName: "5", Section: "A",
	})
	if err != nil {
		t.Fatalf("ClassWisePayments error: %v", err)
	}
	if !aggs[0].TotalAmount.Equal(dec("8000")) {
		t.Errorf("TotalAmount = %s, want 8000 without the inactive extra", aggs[0].TotalAmount)
	}
}
