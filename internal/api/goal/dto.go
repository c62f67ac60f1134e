package goal

type CreateGoalRequest struct {
	CoupleID      string  `json:"coupleId" validate:"required"`
	Title         string  `json:"title" validate:"required,max=120"`
	Description   string  `json:"description" validate:"max=500"`
	TargetAmount  float64 `json:"targetAmount" validate:"required,gt=0"`
	CurrentAmount float64 `json:"currentAmount" validate:"gte=0"`
	Icon          string  `json:"icon"`
	Color         string  `json:"color"`
	Deadline      string  `json:"deadline"`
	Priority      string  `json:"priority" validate:"omitempty,oneof=high medium low"`
}

type UpdateGoalRequest struct {
	ID            string  `json:"id" validate:"required"`
	CoupleID      string  `json:"coupleId" validate:"required"`
	Title         string  `json:"title" validate:"required,max=120"`
	Description   string  `json:"description" validate:"max=500"`
	TargetAmount  float64 `json:"targetAmount" validate:"required,gt=0"`
	CurrentAmount float64 `json:"currentAmount" validate:"gte=0"`
	Icon          string  `json:"icon"`
	Color         string  `json:"color"`
	Deadline      string  `json:"deadline"`
	Priority      string  `json:"priority" validate:"omitempty,oneof=high medium low"`
}

type ContributeRequest struct {
	ID       string  `json:"id" validate:"required"`
	CoupleID string  `json:"coupleId" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

type GoalResponse struct {
	ID            string  `json:"id"`
	CoupleID      string  `json:"couple_id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	Icon          string  `json:"icon"`
	Color         string  `json:"color"`
	Deadline      string  `json:"deadline,omitempty"`
	Priority      string  `json:"priority"`
	Progress      float64 `json:"progress"`
	IsCompleted   bool    `json:"is_completed"`
	CompletedAt   string  `json:"completed_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}
