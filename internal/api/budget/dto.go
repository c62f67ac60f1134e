package budget

type CreateTransactionRequest struct {
	CoupleID        string  `json:"coupleId" validate:"required"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Category        string  `json:"category" validate:"required"`
	Note            string  `json:"note"`
	Payer           string  `json:"payer" validate:"required,oneof=his hers shared"`
	Type            string  `json:"type" validate:"omitempty,oneof=income expense"`
	TransactionDate string  `json:"transactionDate" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateTransactionRequest struct {
	ID              string  `json:"id" validate:"required"`
	CoupleID        string  `json:"coupleId" validate:"required"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Category        string  `json:"category" validate:"required"`
	Note            string  `json:"note"`
	Payer           string  `json:"payer" validate:"required,oneof=his hers shared"`
	Type            string  `json:"type" validate:"required,oneof=income expense"`
	TransactionDate string  `json:"transactionDate" validate:"required,datetime=2006-01-02"`
}

type TransactionResponse struct {
	ID              string  `json:"id"`
	CoupleID        string  `json:"couple_id"`
	Amount          float64 `json:"amount"`
	Category        string  `json:"category"`
	Note            string  `json:"note,omitempty"`
	Payer           string  `json:"payer"`
	Type            string  `json:"type"`
	CreatedBy       string  `json:"created_by"`
	TransactionDate string  `json:"transaction_date"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type TransactionListResponse struct {
	Month        string                `json:"month"`
	Transactions []TransactionResponse `json:"transactions"`
}

type UpdateAllocationRequest struct {
	CoupleID     string  `json:"coupleId" validate:"required"`
	Month        string  `json:"month" validate:"omitempty,datetime=2006-01"`
	MonthlyTotal float64 `json:"monthlyTotal" validate:"required"`
	HisBudget    float64 `json:"hisBudget" validate:"gte=0"`
	HersBudget   float64 `json:"hersBudget" validate:"gte=0"`
	SharedBudget float64 `json:"sharedBudget" validate:"gte=0"`
}

type AllocationResponse struct {
	MonthlyTotal float64 `json:"monthly_total"`
	HisBudget    float64 `json:"his_budget"`
	HersBudget   float64 `json:"hers_budget"`
	SharedBudget float64 `json:"shared_budget"`
}

type AutoBalanceRequest struct {
	MonthlyTotal float64 `json:"monthlyTotal" validate:"required"`
	HisBudget    float64 `json:"hisBudget" validate:"gte=0"`
	HersBudget   float64 `json:"hersBudget" validate:"gte=0"`
	SharedBudget float64 `json:"sharedBudget" validate:"gte=0"`
}

type BucketAmounts struct {
	His    float64 `json:"his"`
	Hers   float64 `json:"hers"`
	Shared float64 `json:"shared"`
	Total  float64 `json:"total"`
}

// SummaryResponse is the wire shape of the monthly summary; it must
// stay bit-stable for client compatibility. BudgetGoals is null when no
// budget row exists for the month.
type SummaryResponse struct {
	Month             string              `json:"month"`
	Income            BucketAmounts       `json:"income"`
	Expenses          BucketAmounts       `json:"expenses"`
	Balance           BucketAmounts       `json:"balance"`
	BudgetGoals       *AllocationResponse `json:"budget_goals"`
	Percentage        int                 `json:"percentage"`
	Status            string              `json:"status"`
	TransactionsCount int                 `json:"transactions_count"`
	CategoryBreakdown map[string]float64  `json:"category_breakdown"`
}
