package budgetService

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"ourlittleworld/internal/api/budget"
	"ourlittleworld/internal/entity"
	contextPkg "ourlittleworld/pkg/context"
	"ourlittleworld/pkg/money"
	"ourlittleworld/pkg/realtime"
)

func (s *budgetService) CreateTransaction(ctx context.Context, user entity.UserLoginData, req budget.CreateTransactionRequest) (entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.membership.EnsureMember(ctx, req.CoupleID, user.ID); err != nil {
		return entity.Transaction{}, err
	}

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Transaction{}, err
	}

	amount, err := money.FromFloat(req.Amount)
	if err != nil {
		return entity.Transaction{}, budget.ErrInvalidAmount
	}

	transactionDate := time.Now().UTC()
	if req.TransactionDate != "" {
		transactionDate, err = time.Parse("2006-01-02", req.TransactionDate)
		if err != nil {
			return entity.Transaction{}, budget.ErrInvalidMonth
		}
	}

	transactionType := req.Type
	if transactionType == "" {
		transactionType = string(entity.TransactionTypeExpense)
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Transaction{}, err
	}

	transaction := entity.Transaction{
		ID:              id,
		CoupleID:        req.CoupleID,
		Amount:          amount,
		Category:        req.Category,
		Note:            req.Note,
		Payer:           entity.PayerBucket(req.Payer),
		Type:            entity.TransactionType(transactionType),
		CreatedBy:       user.ID,
		TransactionDate: transactionDate,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := transaction.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid transaction data")
		return entity.Transaction{}, err
	}

	if err := repo.Transaction.CreateTransaction(ctx, transaction); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create transaction")
		return entity.Transaction{}, budget.ErrCreateTransaction
	}

	s.broadcaster.Broadcast(realtime.Event{
		Type:     realtime.EventTransactionCreated,
		CoupleID: transaction.CoupleID,
		Entity:   transaction,
	})

	return transaction, nil
}

func (s *budgetService) GetTransactionsByMonth(ctx context.Context, user entity.UserLoginData, coupleID string, month string) ([]entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.membership.EnsureMember(ctx, coupleID, user.ID); err != nil {
		return nil, err
	}

	start, end, err := budget.MonthWindow(month)
	if err != nil {
		return nil, err
	}

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	transactions, err := repo.Transaction.GetTransactionsByMonth(ctx, coupleID, start, end)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get transactions by month")
		return nil, err
	}

	return transactions, nil
}

func (s *budgetService) UpdateTransaction(ctx context.Context, user entity.UserLoginData, req budget.UpdateTransactionRequest) (entity.Transaction, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.membership.EnsureMember(ctx, req.CoupleID, user.ID); err != nil {
		return entity.Transaction{}, err
	}

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Transaction{}, err
	}

	existing, err := repo.Transaction.GetTransactionByID(ctx, req.CoupleID, req.ID)
	if err != nil {
		return entity.Transaction{}, err
	}

	amount, err := money.FromFloat(req.Amount)
	if err != nil {
		return entity.Transaction{}, budget.ErrInvalidAmount
	}

	transactionDate, err := time.Parse("2006-01-02", req.TransactionDate)
	if err != nil {
		return entity.Transaction{}, budget.ErrInvalidMonth
	}

	// Any couple member may edit, not only the creator.
	existing.Amount = amount
	existing.Category = req.Category
	existing.Note = req.Note
	existing.Payer = entity.PayerBucket(req.Payer)
	existing.Type = entity.TransactionType(req.Type)
	existing.TransactionDate = transactionDate
	existing.UpdatedAt = time.Now()

	if err := existing.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid transaction data")
		return entity.Transaction{}, err
	}

	if err := repo.Transaction.UpdateTransaction(ctx, existing); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to update transaction")
		return entity.Transaction{}, err
	}

	s.broadcaster.Broadcast(realtime.Event{
		Type:     realtime.EventTransactionUpdated,
		CoupleID: existing.CoupleID,
		Entity:   existing,
	})

	return existing, nil
}

func (s *budgetService) DeleteTransaction(ctx context.Context, user entity.UserLoginData, coupleID string, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.membership.EnsureMember(ctx, coupleID, user.ID); err != nil {
		return err
	}

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	if err := repo.Transaction.DeleteTransaction(ctx, coupleID, id); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to delete transaction")
		return err
	}

	s.broadcaster.Broadcast(realtime.Event{
		Type:     realtime.EventTransactionDeleted,
		CoupleID: coupleID,
		Entity:   map[string]string{"id": id},
	})

	return nil
}
