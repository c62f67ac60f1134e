package budgetRepository

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"ourlittleworld/internal/entity"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Transaction: &transactionRepository{q: sqlExecutor, log: r.log},
		Budget:      &budgetRepository{q: sqlExecutor, log: r.log},
		Commit:      commitFunc,
		Rollback:    rollbackFunc,
	}, nil
}

type Client struct {
	Transaction interface {
		CreateTransaction(c context.Context, transaction entity.Transaction) error
		GetTransactionByID(c context.Context, coupleID string, id string) (entity.Transaction, error)
		GetTransactionsByMonth(c context.Context, coupleID string, start, end time.Time) ([]entity.Transaction, error)
		UpdateTransaction(c context.Context, transaction entity.Transaction) error
		DeleteTransaction(c context.Context, coupleID string, id string) error
	}

	Budget interface {
		GetBudget(c context.Context, coupleID string, month string) (*entity.Budget, error)
		UpsertBudget(c context.Context, budget entity.Budget) error
	}

	Commit   func() error
	Rollback func() error
}

type transactionRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type budgetRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
