package entity

import (
	"time"

	"ourlittleworld/internal/api/budget"
	"ourlittleworld/pkg/money"
)

type PayerBucket string

const (
	PayerHis    PayerBucket = "his"
	PayerHers   PayerBucket = "hers"
	PayerShared PayerBucket = "shared"
)

func IsValidPayer(payer string) bool {
	switch PayerBucket(payer) {
	case PayerHis, PayerHers, PayerShared:
		return true
	default:
		return false
	}
}

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func IsValidTransactionType(transactionType string) bool {
	switch TransactionType(transactionType) {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}

type Transaction struct {
	ID              string          `json:"id"`
	CoupleID        string          `json:"couple_id"`
	Amount          money.Cents     `json:"amount"`
	Category        string          `json:"category"`
	Note            string          `json:"note"`
	Payer           PayerBucket     `json:"payer"`
	Type            TransactionType `json:"type"`
	CreatedBy       string          `json:"created_by"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (t Transaction) EntityID() string { return t.ID }

func (t *Transaction) Validate() error {
	if t.Amount <= 0 {
		return budget.ErrInvalidAmount
	}

	if t.Category == "" {
		return budget.ErrMissingCategory
	}

	if !IsValidPayer(string(t.Payer)) {
		return budget.ErrInvalidPayer
	}

	if !IsValidTransactionType(string(t.Type)) {
		return budget.ErrInvalidTransactionType
	}

	return nil
}

// Budget is the per-month allocation row. The balanced-allocation
// invariant (his + hers + shared == monthly total) is enforced at write
// time by the service, not by the database.
type Budget struct {
	CoupleID     string      `json:"couple_id"`
	Month        string      `json:"month"`
	MonthlyTotal money.Cents `json:"monthly_total"`
	HisBudget    money.Cents `json:"his_budget"`
	HersBudget   money.Cents `json:"hers_budget"`
	SharedBudget money.Cents `json:"shared_budget"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
