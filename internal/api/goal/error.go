package goal

import "ourlittleworld/pkg/response"

var (
	ErrGoalNotFound    = response.NewError(404, "savings goal not found")
	ErrMissingTitle    = response.NewError(422, "goal title is required")
	ErrNegativeAmount  = response.NewError(422, "goal amounts cannot be negative")
	ErrInvalidPriority = response.NewError(422, "priority must be high, medium or low")
	ErrInvalidAmount   = response.NewError(422, "amount is not a valid number")
	ErrInvalidDeadline = response.NewError(422, "deadline must use the YYYY-MM-DD format")
	ErrCreateGoal      = response.NewError(500, "failed to create savings goal")
	ErrUpdateGoal      = response.NewError(500, "failed to update savings goal")
)
