package budgetRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"ourlittleworld/internal/api/budget"
	"ourlittleworld/internal/entity"
	contextPkg "ourlittleworld/pkg/context"
	"ourlittleworld/pkg/money"
)

type TransactionDB struct {
	ID              sql.NullString `db:"id"`
	CoupleID        sql.NullString `db:"couple_id"`
	AmountCents     sql.NullInt64  `db:"amount_cents"`
	Category        sql.NullString `db:"category"`
	Note            sql.NullString `db:"note"`
	Payer           sql.NullString `db:"payer"`
	Type            sql.NullString `db:"type"`
	CreatedBy       sql.NullString `db:"created_by"`
	TransactionDate time.Time      `db:"transaction_date"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (r *transactionRepository) CreateTransaction(c context.Context, transaction entity.Transaction) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":               transaction.ID,
		"couple_id":        transaction.CoupleID,
		"amount_cents":     int64(transaction.Amount),
		"category":         transaction.Category,
		"note":             transaction.Note,
		"payer":            string(transaction.Payer),
		"type":             string(transaction.Type),
		"created_by":       transaction.CreatedBy,
		"transaction_date": transaction.TransactionDate,
		"created_at":       time.Now(),
		"updated_at":       time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateTransaction, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateTransaction")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating transaction")

		return err
	}

	return nil
}

func (r *transactionRepository) GetTransactionByID(c context.Context, coupleID string, id string) (entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(c)
	var transaction TransactionDB

	argsKV := map[string]interface{}{
		"id":        id,
		"couple_id": coupleID,
	}

	query, args, err := sqlx.Named(queryGetTransactionByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTransactionByID named query preparation err")
		return entity.Transaction{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&transaction); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Missing and foreign-couple ids look the same on purpose.
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("GetTransactionByID no rows found")
			return entity.Transaction{}, budget.ErrTransactionNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTransactionByID execution err")
		return entity.Transaction{}, err
	}

	return r.makeTransaction(transaction), nil
}

func (r *transactionRepository) GetTransactionsByMonth(c context.Context, coupleID string, start, end time.Time) ([]entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(c)
	var transactions []TransactionDB

	argsKV := map[string]interface{}{
		"couple_id":  coupleID,
		"start_date": start,
		"end_date":   end,
	}

	query, args, err := sqlx.Named(queryGetTransactionsByMonth, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTransactionsByMonth named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &transactions, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTransactionsByMonth execution err")
		return nil, err
	}

	result := make([]entity.Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		result = append(result, r.makeTransaction(transaction))
	}

	return result, nil
}

func (r *transactionRepository) UpdateTransaction(c context.Context, transaction entity.Transaction) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":               transaction.ID,
		"couple_id":        transaction.CoupleID,
		"amount_cents":     int64(transaction.Amount),
		"category":         transaction.Category,
		"note":             transaction.Note,
		"payer":            string(transaction.Payer),
		"type":             string(transaction.Type),
		"transaction_date": transaction.TransactionDate,
		"updated_at":       time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateTransaction, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateTransaction named query preparation err")

		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateTransaction execution err")

		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateTransaction rows affected err")

		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("UpdateTransaction no rows affected")

		return budget.ErrTransactionNotFound
	}

	return nil
}

func (r *transactionRepository) DeleteTransaction(c context.Context, coupleID string, id string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":        id,
		"couple_id": coupleID,
	}

	query, args, err := sqlx.Named(queryDeleteTransaction, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteTransaction named query preparation err")

		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteTransaction execution err")

		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteTransaction rows affected err")

		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("DeleteTransaction no rows affected")

		return budget.ErrTransactionNotFound
	}

	return nil
}

func (r *transactionRepository) makeTransaction(transaction TransactionDB) entity.Transaction {
	return entity.Transaction{
		ID:              transaction.ID.String,
		CoupleID:        transaction.CoupleID.String,
		Amount:          money.Cents(transaction.AmountCents.Int64),
		Category:        transaction.Category.String,
		Note:            transaction.Note.String,
		Payer:           entity.PayerBucket(transaction.Payer.String),
		Type:            entity.TransactionType(transaction.Type.String),
		CreatedBy:       transaction.CreatedBy.String,
		TransactionDate: transaction.TransactionDate,
		CreatedAt:       transaction.CreatedAt,
		UpdatedAt:       transaction.UpdatedAt,
	}
}
