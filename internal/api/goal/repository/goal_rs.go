package goalRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"ourlittleworld/internal/api/goal"
	"ourlittleworld/internal/entity"
	contextPkg "ourlittleworld/pkg/context"
	"ourlittleworld/pkg/money"
)

type GoalDB struct {
	ID           sql.NullString `db:"id"`
	CoupleID     sql.NullString `db:"couple_id"`
	Title        sql.NullString `db:"title"`
	Description  sql.NullString `db:"description"`
	TargetCents  sql.NullInt64  `db:"target_cents"`
	CurrentCents sql.NullInt64  `db:"current_cents"`
	Icon         sql.NullString `db:"icon"`
	Color        sql.NullString `db:"color"`
	Deadline     sql.NullTime   `db:"deadline"`
	Priority     sql.NullString `db:"priority"`
	IsCompleted  sql.NullBool   `db:"is_completed"`
	CompletedAt  sql.NullTime   `db:"completed_at"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r *goalRepository) CreateGoal(c context.Context, goalRow entity.SavingsGoal) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":            goalRow.ID,
		"couple_id":     goalRow.CoupleID,
		"title":         goalRow.Title,
		"description":   goalRow.Description,
		"target_cents":  int64(goalRow.TargetAmount),
		"current_cents": int64(goalRow.CurrentAmount),
		"icon":          goalRow.Icon,
		"color":         goalRow.Color,
		"deadline":      goalRow.Deadline,
		"priority":      string(goalRow.Priority),
		"is_completed":  goalRow.IsCompleted,
		"completed_at":  goalRow.CompletedAt,
		"created_at":    time.Now(),
		"updated_at":    time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateGoal, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateGoal named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating goal")
		return err
	}

	return nil
}

func (r *goalRepository) GetGoalByID(c context.Context, coupleID string, id string) (entity.SavingsGoal, error) {
	requestID := contextPkg.GetRequestID(c)
	var goalRow GoalDB

	argsKV := map[string]interface{}{
		"id":        id,
		"couple_id": coupleID,
	}

	query, args, err := sqlx.Named(queryGetGoalByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetGoalByID named query preparation err")
		return entity.SavingsGoal{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&goalRow); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("GetGoalByID no rows found")
			return entity.SavingsGoal{}, goal.ErrGoalNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetGoalByID execution err")
		return entity.SavingsGoal{}, err
	}

	return r.makeGoal(goalRow), nil
}

func (r *goalRepository) GetGoalsByCouple(c context.Context, coupleID string) ([]entity.SavingsGoal, error) {
	requestID := contextPkg.GetRequestID(c)
	var goals []GoalDB

	argsKV := map[string]interface{}{
		"couple_id": coupleID,
	}

	query, args, err := sqlx.Named(queryGetGoalsByCouple, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetGoalsByCouple named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &goals, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetGoalsByCouple execution err")
		return nil, err
	}

	result := make([]entity.SavingsGoal, 0, len(goals))
	for _, goalRow := range goals {
		result = append(result, r.makeGoal(goalRow))
	}

	return result, nil
}

func (r *goalRepository) UpdateGoal(c context.Context, goalRow entity.SavingsGoal) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":            goalRow.ID,
		"couple_id":     goalRow.CoupleID,
		"title":         goalRow.Title,
		"description":   goalRow.Description,
		"target_cents":  int64(goalRow.TargetAmount),
		"current_cents": int64(goalRow.CurrentAmount),
		"icon":          goalRow.Icon,
		"color":         goalRow.Color,
		"deadline":      goalRow.Deadline,
		"priority":      string(goalRow.Priority),
		"is_completed":  goalRow.IsCompleted,
		"completed_at":  goalRow.CompletedAt,
		"updated_at":    time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateGoal, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateGoal named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateGoal execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateGoal rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("UpdateGoal no rows affected")
		return goal.ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) DeleteGoal(c context.Context, coupleID string, id string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":        id,
		"couple_id": coupleID,
	}

	query, args, err := sqlx.Named(queryDeleteGoal, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteGoal named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteGoal execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteGoal rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("DeleteGoal no rows affected")
		return goal.ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) makeGoal(goalRow GoalDB) entity.SavingsGoal {
	result := entity.SavingsGoal{
		ID:            goalRow.ID.String,
		CoupleID:      goalRow.CoupleID.String,
		Title:         goalRow.Title.String,
		Description:   goalRow.Description.String,
		TargetAmount:  money.Cents(goalRow.TargetCents.Int64),
		CurrentAmount: money.Cents(goalRow.CurrentCents.Int64),
		Icon:          goalRow.Icon.String,
		Color:         goalRow.Color.String,
		Priority:      entity.GoalPriority(goalRow.Priority.String),
		IsCompleted:   goalRow.IsCompleted.Bool,
		CreatedAt:     goalRow.CreatedAt,
		UpdatedAt:     goalRow.UpdatedAt,
	}

	if goalRow.Deadline.Valid {
		deadline := goalRow.Deadline.Time
		result.Deadline = &deadline
	}
	if goalRow.CompletedAt.Valid {
		completedAt := goalRow.CompletedAt.Time
		result.CompletedAt = &completedAt
	}

	return result
}
