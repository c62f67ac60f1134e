package budget

import (
	"testing"

	"ourlittleworld/pkg/money"
)

func TestValidateAllocation(t *testing.T) {
	cases := []struct {
		name                      string
		total, his, hers, shared  money.Cents
		wantOK                    bool
		wantDifference            money.Cents
	}{
		{"balanced", 200000, 60000, 50000, 90000, true, 0},
		{"under allocated", 200000, 50000, 50000, 50000, false, 50000},
		{"over allocated", 200000, 100000, 100000, 50000, false, -50000},
		{"all zero buckets", 200000, 0, 0, 0, false, 200000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, diff := ValidateAllocation(tc.total, tc.his, tc.hers, tc.shared)
			if ok != tc.wantOK || diff != tc.wantDifference {
				t.Errorf("ValidateAllocation = (%v, %d), want (%v, %d)", ok, diff, tc.wantOK, tc.wantDifference)
			}
		})
	}
}

func TestAutoBalanceConservation(t *testing.T) {
	cases := []struct {
		name                     string
		total, his, hers, shared money.Cents
	}{
		{"under allocated", 200000, 50000, 50000, 50000},
		{"over allocated", 200000, 100000, 100000, 50000},
		{"remainder one", 100, 33, 33, 33},
		{"remainder two", 101, 33, 33, 33},
		{"negative remainder", 99, 34, 34, 34},
		{"already balanced", 200000, 60000, 50000, 90000},
		{"empty buckets", 99999, 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			his, hers, shared := AutoBalance(tc.total, tc.his, tc.hers, tc.shared)
			if his+hers+shared != tc.total {
				t.Errorf("AutoBalance sum = %d, want %d", his+hers+shared, tc.total)
			}
		})
	}
}

func TestAutoBalanceRemainderGoesToShared(t *testing.T) {
	// difference = 2, so his and hers each get 0 and shared takes 2.
	his, hers, shared := AutoBalance(102, 33, 33, 34)
	if his != 33 || hers != 33 || shared != 36 {
		t.Errorf("AutoBalance = (%d, %d, %d), want (33, 33, 36)", his, hers, shared)
	}
}

func TestStatusBoundaries(t *testing.T) {
	const total = money.Cents(100000) // 1000.00

	cases := []struct {
		name    string
		balance money.Cents
		want    Status
	}{
		{"exactly half", 50000, StatusHealthy},
		{"just under half", 49999, StatusWarning},
		{"exactly a fifth", 20000, StatusWarning},
		{"just under a fifth", 19999, StatusOverBudget},
		{"negative balance", -100, StatusOverBudget},
		{"full balance", 100000, StatusHealthy},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusFor(tc.balance, total); got != tc.want {
				t.Errorf("StatusFor(%d, %d) = %s, want %s", tc.balance, total, got, tc.want)
			}
		})
	}
}

func TestMonthWindow(t *testing.T) {
	start, end, err := MonthWindow("2025-03")
	if err != nil {
		t.Fatalf("MonthWindow returned error: %v", err)
	}
	if start.Format("2006-01-02") != "2025-03-01" {
		t.Errorf("start = %s, want 2025-03-01", start.Format("2006-01-02"))
	}
	if end.Format("2006-01-02") != "2025-04-01" {
		t.Errorf("end = %s, want 2025-04-01", end.Format("2006-01-02"))
	}

	if _, _, err := MonthWindow("03-2025"); err == nil {
		t.Error("MonthWindow accepted a malformed key")
	}
	if _, _, err := MonthWindow("2025-13"); err == nil {
		t.Error("MonthWindow accepted month 13")
	}
}
