package budgetRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"ourlittleworld/internal/entity"
	contextPkg "ourlittleworld/pkg/context"
	"ourlittleworld/pkg/money"
)

type BudgetDB struct {
	CoupleID          sql.NullString `db:"couple_id"`
	Month             sql.NullString `db:"month"`
	MonthlyTotalCents sql.NullInt64  `db:"monthly_total_cents"`
	HisCents          sql.NullInt64  `db:"his_cents"`
	HersCents         sql.NullInt64  `db:"hers_cents"`
	SharedCents       sql.NullInt64  `db:"shared_cents"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

// GetBudget returns nil without error when no row exists for the month;
// an unconfigured budget is a valid state, not a failure.
func (r *budgetRepository) GetBudget(c context.Context, coupleID string, month string) (*entity.Budget, error) {
	requestID := contextPkg.GetRequestID(c)
	var row BudgetDB

	argsKV := map[string]interface{}{
		"couple_id": coupleID,
		"month":     month,
	}

	query, args, err := sqlx.Named(queryGetBudget, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBudget named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBudget execution err")
		return nil, err
	}

	budget := r.makeBudget(row)
	return &budget, nil
}

func (r *budgetRepository) UpsertBudget(c context.Context, budget entity.Budget) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"couple_id":           budget.CoupleID,
		"month":               budget.Month,
		"monthly_total_cents": int64(budget.MonthlyTotal),
		"his_cents":           int64(budget.HisBudget),
		"hers_cents":          int64(budget.HersBudget),
		"shared_cents":        int64(budget.SharedBudget),
		"created_at":          time.Now(),
		"updated_at":          time.Now(),
	}

	query, args, err := sqlx.Named(queryUpsertBudget, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpsertBudget named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpsertBudget execution err")
		return err
	}

	return nil
}

func (r *budgetRepository) makeBudget(row BudgetDB) entity.Budget {
	return entity.Budget{
		CoupleID:     row.CoupleID.String,
		Month:        row.Month.String,
		MonthlyTotal: money.Cents(row.MonthlyTotalCents.Int64),
		HisBudget:    money.Cents(row.HisCents.Int64),
		HersBudget:   money.Cents(row.HersCents.Int64),
		SharedBudget: money.Cents(row.SharedCents.Int64),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
