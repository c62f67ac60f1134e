package budget

import (
	"time"

	"ourlittleworld/pkg/money"
)

type Status string

const (
	StatusHealthy    Status = "healthy"
	StatusWarning    Status = "warning"
	StatusOverBudget Status = "over_budget"
)

// BucketTotals holds one figure per payer bucket plus the grand total.
type BucketTotals struct {
	His    money.Cents
	Hers   money.Cents
	Shared money.Cents
	Total  money.Cents
}

// Allocation is the three-way split of a monthly total.
type Allocation struct {
	MonthlyTotal money.Cents
	His          money.Cents
	Hers         money.Cents
	Shared       money.Cents
}

// Summary is the derived monthly picture; never persisted. Goals is nil
// when no budget row exists for the month, which callers must keep
// distinct from a present-but-zero budget.
type Summary struct {
	Month             string
	Income            BucketTotals
	Expenses          BucketTotals
	Balance           BucketTotals
	Goals             *Allocation
	Percentage        int
	Status            Status
	CategoryBreakdown map[string]money.Cents
	TransactionsCount int
}

// ValidateAllocation reports whether the three buckets sum exactly to
// the monthly total. The difference is total minus the bucket sum:
// positive when under-allocated, negative when over-allocated.
func ValidateAllocation(monthlyTotal, his, hers, shared money.Cents) (bool, money.Cents) {
	difference := monthlyTotal - (his + hers + shared)
	return difference == 0, difference
}

// AutoBalance distributes the difference by adding a third to each
// bucket, with the remainder always landing on shared. The result is
// guaranteed to sum to the monthly total; callers must not assume the
// split is symmetric.
func AutoBalance(monthlyTotal, his, hers, shared money.Cents) (money.Cents, money.Cents, money.Cents) {
	_, difference := ValidateAllocation(monthlyTotal, his, hers, shared)

	each := difference / 3
	remainder := difference % 3

	return his + each, hers + each, shared + each + remainder
}

// StatusFor derives the health status from the total balance relative
// to the monthly total. Both thresholds are inclusive on the >= side.
func StatusFor(balanceTotal, monthlyTotal money.Cents) Status {
	if 2*balanceTotal >= monthlyTotal {
		return StatusHealthy
	}
	if 5*balanceTotal >= monthlyTotal {
		return StatusWarning
	}
	return StatusOverBudget
}

// MonthWindow resolves a "YYYY-MM" key to its inclusive-exclusive UTC
// date range [first of month, first of next month).
func MonthWindow(month string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	return start, start.AddDate(0, 1, 0), nil
}

// CurrentMonthKey formats now as the default month query key.
func CurrentMonthKey(now time.Time) string {
	return now.UTC().Format("2006-01")
}
