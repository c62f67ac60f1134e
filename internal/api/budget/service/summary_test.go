package budgetService

import (
	"testing"

	"ourlittleworld/internal/api/budget"
	"ourlittleworld/internal/entity"
	"ourlittleworld/pkg/money"
)

func TestComputeSummaryBalanceFormula(t *testing.T) {
	budgetRow := &entity.Budget{
		CoupleID:     "c1",
		Month:        "2025-06",
		MonthlyTotal: 200000,
		HisBudget:    60000,
		HersBudget:   50000,
		SharedBudget: 90000,
	}
	transactions := []entity.Transaction{
		{ID: "t1", Payer: entity.PayerHis, Type: entity.TransactionTypeExpense, Amount: 10000, Category: "food"},
		{ID: "t2", Payer: entity.PayerShared, Type: entity.TransactionTypeIncome, Amount: 5000, Category: "gift"},
	}

	s := ComputeSummary(budgetRow, transactions, "2025-06")

	wantExpenses := budget.BucketTotals{His: 10000, Total: 10000}
	if s.Expenses != wantExpenses {
		t.Errorf("expenses = %+v, want %+v", s.Expenses, wantExpenses)
	}

	wantIncome := budget.BucketTotals{Shared: 5000, Total: 5000}
	if s.Income != wantIncome {
		t.Errorf("income = %+v, want %+v", s.Income, wantIncome)
	}

	wantBalance := budget.BucketTotals{His: 50000, Hers: 50000, Shared: 95000, Total: 195000}
	if s.Balance != wantBalance {
		t.Errorf("balance = %+v, want %+v", s.Balance, wantBalance)
	}

	if s.Percentage != 5 {
		t.Errorf("percentage = %d, want 5", s.Percentage)
	}
	if s.Status != budget.StatusHealthy {
		t.Errorf("status = %s, want healthy", s.Status)
	}
	if s.TransactionsCount != 2 {
		t.Errorf("transactions_count = %d, want 2", s.TransactionsCount)
	}
}

func TestComputeSummaryWithoutBudget(t *testing.T) {
	transactions := []entity.Transaction{
		{ID: "t1", Payer: entity.PayerHers, Type: entity.TransactionTypeExpense, Amount: 4200, Category: "food"},
	}

	s := ComputeSummary(nil, transactions, "2025-06")

	if s.Goals != nil {
		t.Error("goals must be nil when no budget row exists")
	}
	if s.Status != budget.StatusHealthy {
		t.Errorf("status = %s, want healthy without a configured budget", s.Status)
	}
	if s.Percentage != 0 {
		t.Errorf("percentage = %d, want 0", s.Percentage)
	}
	if s.Balance != (budget.BucketTotals{}) {
		t.Errorf("balance = %+v, want zeros", s.Balance)
	}
	if s.Expenses.Hers != 4200 || s.Expenses.Total != 4200 {
		t.Errorf("expenses = %+v, want hers/total 4200", s.Expenses)
	}
}

func TestComputeSummaryDistinguishesZeroBudgetFromNone(t *testing.T) {
	zero := &entity.Budget{CoupleID: "c1", Month: "2025-06"}

	s := ComputeSummary(zero, nil, "2025-06")

	if s.Goals == nil {
		t.Fatal("a present-but-zero budget must still carry goals")
	}
	if s.Goals.MonthlyTotal != 0 {
		t.Errorf("monthly total = %d, want 0", s.Goals.MonthlyTotal)
	}
	// Division by a zero total must be guarded, not undefined.
	if s.Percentage != 0 {
		t.Errorf("percentage = %d, want 0 for zero monthly total", s.Percentage)
	}
}

func TestComputeSummaryCategoryBreakdownSpansBothTypes(t *testing.T) {
	transactions := []entity.Transaction{
		{ID: "t1", Payer: entity.PayerHis, Type: entity.TransactionTypeExpense, Amount: 1000, Category: "side gig"},
		{ID: "t2", Payer: entity.PayerHis, Type: entity.TransactionTypeIncome, Amount: 2500, Category: "side gig"},
		{ID: "t3", Payer: entity.PayerShared, Type: entity.TransactionTypeExpense, Amount: 700, Category: "food"},
	}

	s := ComputeSummary(nil, transactions, "2025-06")

	if got := s.CategoryBreakdown["side gig"]; got != 3500 {
		t.Errorf("breakdown[side gig] = %d, want 3500 across both types", got)
	}
	if got := s.CategoryBreakdown["food"]; got != 700 {
		t.Errorf("breakdown[food] = %d, want 700", got)
	}
}

func TestComputeSummaryEmpty(t *testing.T) {
	s := ComputeSummary(nil, nil, "2025-06")

	if s.TransactionsCount != 0 || s.Income.Total != 0 || s.Expenses.Total != 0 {
		t.Errorf("empty summary not fully zeroed: %+v", s)
	}
	if s.CategoryBreakdown == nil {
		t.Error("category breakdown must be an empty map, not nil")
	}
	if s.Month != "2025-06" {
		t.Errorf("month = %s, want 2025-06", s.Month)
	}
}

func TestComputeSummaryStatusThresholds(t *testing.T) {
	// Allocation fully on shared so expenses map cleanly onto balance.
	mk := func(expense money.Cents) budget.Summary {
		row := &entity.Budget{MonthlyTotal: 100000, SharedBudget: 100000}
		txs := []entity.Transaction{
			{ID: "t", Payer: entity.PayerShared, Type: entity.TransactionTypeExpense, Amount: expense, Category: "x"},
		}
		return ComputeSummary(row, txs, "2025-06")
	}

	if s := mk(50000); s.Status != budget.StatusHealthy {
		t.Errorf("balance 500.00 of 1000.00: status = %s, want healthy", s.Status)
	}
	if s := mk(50001); s.Status != budget.StatusWarning {
		t.Errorf("balance 499.99 of 1000.00: status = %s, want warning", s.Status)
	}
	if s := mk(80000); s.Status != budget.StatusWarning {
		t.Errorf("balance 200.00 of 1000.00: status = %s, want warning", s.Status)
	}
	if s := mk(80001); s.Status != budget.StatusOverBudget {
		t.Errorf("balance 199.99 of 1000.00: status = %s, want over_budget", s.Status)
	}
}
