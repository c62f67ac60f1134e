package budget

import (
	"ourlittleworld/pkg/money"
	"ourlittleworld/pkg/response"
)

var (
	ErrTransactionNotFound    = response.NewError(404, "transaction not found")
	ErrBudgetNotConfigured    = response.NewError(404, "no budget configured for this month")
	ErrInvalidAmount          = response.NewError(400, "transaction amount must be positive")
	ErrMissingCategory        = response.NewError(400, "transaction category is required")
	ErrInvalidPayer           = response.NewError(400, "invalid payer bucket")
	ErrInvalidTransactionType = response.NewError(400, "invalid transaction type")
	ErrInvalidMonth           = response.NewError(400, "month must be formatted YYYY-MM")
	ErrInvalidMonthlyTotal    = response.NewError(422, "monthly total must be positive")
	ErrNotCoupleMember        = response.NewError(403, "user is not a member of this couple")
	ErrCreateTransaction      = response.NewError(500, "failed to create transaction")
	ErrUpdateTransaction      = response.NewError(500, "failed to update transaction")
	ErrDeleteTransaction      = response.NewError(500, "failed to delete transaction")
	ErrUpsertBudget           = response.NewError(500, "failed to save budget allocation")
)

// NewUnbalancedError carries the allocation difference so the client
// can surface it and offer auto-balancing. Positive means
// under-allocated, negative over-allocated.
func NewUnbalancedError(difference money.Cents) error {
	return response.NewErrorWithPayload(422, "allocations do not sum to the monthly total", map[string]interface{}{
		"code":       "UNBALANCED_ALLOCATION",
		"difference": difference.Float(),
	})
}
