package fees

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDistributeEqual(t *testing.T) {
	tests := []struct {
		name  string
		total string
		want  [4]string
	}{
		{"evenly divisible", "1000", [4]string{"250", "250", "250", "250"}},
		{"remainder lands in q4", "1000.01", [4]string{"250", "250", "250", "250.01"}},
		{"odd paise", "100.03", [4]string{"25.01", "25.01", "25.01", "25"}},
		{"small amount", "0.01", [4]string{"0", "0", "0", "0.01"}},
		{"thirds rounding", "999.99", [4]string{"250", "250", "250", "249.99"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Distribute(dec(tt.total), EqualPolicy())
			if err != nil {
				t.Fatalf("Distribute(%s) error: %v", tt.total, err)
			}
			for i := range q {
				if !q[i].Equal(dec(tt.want[i])) {
					t.Errorf("q%d = %s, want %s", i+1, q[i], tt.want[i])
				}
			}
			if !q.Sum().Equal(dec(tt.total)) {
				t.Errorf("sum = %s, want %s", q.Sum(), tt.total)
			}
		})
	}
}

func TestDistributeCustom(t *testing.T) {
	q, err := Distribute(dec("1000"), CustomPolicy(dec("40"), dec("30"), dec("20"), dec("10")))
	if err != nil {
		t.Fatalf("Distribute error: %v", err)
	}
	want := [4]string{"400", "300", "200", "100"}
	for i := range q {
		if !q[i].Equal(dec(want[i])) {
			t.Errorf("q%d = %s, want %s", i+1, q[i], want[i])
		}
	}
}

func TestDistributeCustomRemainder(t *testing.T) {
	// 33.33% of 100 rounds to 33.33 three times; q4 takes whatever is left.
	q, err := Distribute(dec("100"), CustomPolicy(dec("33.33"), dec("33.33"), dec("33.33"), dec("0.01")))
	if err != nil {
		t.Fatalf("Distribute error: %v", err)
	}
	if !q.Sum().Equal(dec("100")) {
		t.Errorf("sum = %s, want 100", q.Sum())
	}
	if !q[3].Equal(dec("0.01")) {
		t.Errorf("q4 = %s, want 0.01", q[3])
	}
}

func TestDistributeInvalidPercentages(t *testing.T) {
	tests := []struct {
		name string
		pcts [4]string
	}{
		{"sum below 100", [4]string{"25", "25", "25", "24.99"}},
		{"sum above 100", [4]string{"25", "25", "25", "25.02"}},
		{"negative percentage", [4]string{"50", "60", "-10", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Distribute(dec("1000"),
				CustomPolicy(dec(tt.pcts[0]), dec(tt.pcts[1]), dec(tt.pcts[2]), dec(tt.pcts[3])))
			if !errors.Is(err, ErrInvalidDistribution) {
				t.Errorf("err = %v, want ErrInvalidDistribution", err)
			}
		})
	}
}

func TestDistributePercentageTolerance(t *testing.T) {
	// 0.01 off is within tolerance.
	q, err := Distribute(dec("1000"), CustomPolicy(dec("25"), dec("25"), dec("25"), dec("25.01")))
	if err != nil {
		t.Fatalf("Distribute error: %v", err)
	}
	if !q.Sum().Equal(dec("1000")) {
		t.Errorf("sum = %s, want 1000", q.Sum())
	}
}

func TestDistributeInvalidAmount(t *testing.T) {
	for _, total := range []string{"0", "-100"} {
		if _, err := Distribute(dec(total), EqualPolicy()); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Distribute(%s) err = %v, want ErrInvalidAmount", total, err)
		}
	}
}

func TestQuartersAdd(t *testing.T) {
	a := Quarters{dec("100"), dec("100"), dec("100"), dec("100")}
	b := Quarters{dec("25"), dec("25"), dec("25"), dec("25.50")}
	sum := a.Add(b)
	if !sum.Sum().Equal(dec("500.50")) {
		t.Errorf("sum = %s, want 500.50", sum.Sum())
	}
	if !sum[3].Equal(dec("125.50")) {
		t.Errorf("q4 = %s, want 125.50", sum[3])
	}
}
