package entity

import (
	"time"

	"ourlittleworld/internal/api/goal"
	"ourlittleworld/pkg/money"
)

type GoalPriority string

const (
	GoalPriorityHigh   GoalPriority = "high"
	GoalPriorityMedium GoalPriority = "medium"
	GoalPriorityLow    GoalPriority = "low"
)

func IsValidGoalPriority(priority string) bool {
	switch GoalPriority(priority) {
	case GoalPriorityHigh, GoalPriorityMedium, GoalPriorityLow:
		return true
	default:
		return false
	}
}

type SavingsGoal struct {
	ID            string       `json:"id"`
	CoupleID      string       `json:"couple_id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	TargetAmount  money.Cents  `json:"target_amount"`
	CurrentAmount money.Cents  `json:"current_amount"`
	Icon          string       `json:"icon"`
	Color         string       `json:"color"`
	Deadline      *time.Time   `json:"deadline,omitempty"`
	Priority      GoalPriority `json:"priority"`
	IsCompleted   bool         `json:"is_completed"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (g SavingsGoal) EntityID() string { return g.ID }

func (g *SavingsGoal) Validate() error {
	if g.Title == "" {
		return goal.ErrMissingTitle
	}

	if g.TargetAmount < 0 || g.CurrentAmount < 0 {
		return goal.ErrNegativeAmount
	}

	if !IsValidGoalPriority(string(g.Priority)) {
		return goal.ErrInvalidPriority
	}

	return nil
}

// Progress is the raw percentage, uncapped. Zero targets report zero
// rather than dividing.
func (g SavingsGoal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return float64(g.CurrentAmount) / float64(g.TargetAmount) * 100
}

// DisplayProgress clamps to 100 for presentation only.
func (g SavingsGoal) DisplayProgress() float64 {
	p := g.Progress()
	if p > 100 {
		return 100
	}
	return p
}

// MarkCompleted is idempotent in effect; the timestamp is overwritten
// on every call.
func (g *SavingsGoal) MarkCompleted(now time.Time) {
	g.IsCompleted = true
	g.CompletedAt = &now
}
