package budgetService

import (
	"ourlittleworld/internal/api/budget"
	"ourlittleworld/internal/entity"
	"ourlittleworld/pkg/money"
)

// ComputeSummary derives the monthly picture from one budget row (or
// nil) and the month's transactions. It is a pure function: callers
// filter transactions to the month window first, and it never fails on
// absent data.
//
// Balance per bucket is allocation + income - expenses, and the total
// balance is the sum of the three bucket balances, not monthly_total
// minus total expenses; the two disagree once income enters a bucket,
// and the bucket-sum form is the contract.
func ComputeSummary(budgetRow *entity.Budget, transactions []entity.Transaction, month string) budget.Summary {
	summary := budget.Summary{
		Month:             month,
		Status:            budget.StatusHealthy,
		CategoryBreakdown: make(map[string]money.Cents),
		TransactionsCount: len(transactions),
	}

	for _, t := range transactions {
		switch t.Type {
		case entity.TransactionTypeIncome:
			addToBucket(&summary.Income, t.Payer, t.Amount)
		default:
			addToBucket(&summary.Expenses, t.Payer, t.Amount)
		}

		// The breakdown spans both income and expense rows; callers
		// needing a type split filter before calling.
		summary.CategoryBreakdown[t.Category] += t.Amount
	}

	if budgetRow == nil {
		return summary
	}

	summary.Goals = &budget.Allocation{
		MonthlyTotal: budgetRow.MonthlyTotal,
		His:          budgetRow.HisBudget,
		Hers:         budgetRow.HersBudget,
		Shared:       budgetRow.SharedBudget,
	}

	summary.Balance = budget.BucketTotals{
		His:    budgetRow.HisBudget + summary.Income.His - summary.Expenses.His,
		Hers:   budgetRow.HersBudget + summary.Income.Hers - summary.Expenses.Hers,
		Shared: budgetRow.SharedBudget + summary.Income.Shared - summary.Expenses.Shared,
	}
	summary.Balance.Total = summary.Balance.His + summary.Balance.Hers + summary.Balance.Shared

	summary.Percentage = money.Percent(summary.Expenses.Total, budgetRow.MonthlyTotal)
	summary.Status = budget.StatusFor(summary.Balance.Total, budgetRow.MonthlyTotal)

	return summary
}

func addToBucket(totals *budget.BucketTotals, payer entity.PayerBucket, amount money.Cents) {
	switch payer {
	case entity.PayerHis:
		totals.His += amount
	case entity.PayerHers:
		totals.Hers += amount
	case entity.PayerShared:
		totals.Shared += amount
	}
	totals.Total += amount
}
