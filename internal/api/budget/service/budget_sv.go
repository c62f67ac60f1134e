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

func (s *budgetService) GetSummary(ctx context.Context, user entity.UserLoginData, coupleID string, month string) (budget.Summary, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.membership.EnsureMember(ctx, coupleID, user.ID); err != nil {
		return budget.Summary{}, err
	}

	if month == "" {
		month = budget.CurrentMonthKey(time.Now())
	}

	start, end, err := budget.MonthWindow(month)
	if err != nil {
		return budget.Summary{}, err
	}

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return budget.Summary{}, err
	}

	budgetRow, err := repo.Budget.GetBudget(ctx, coupleID, month)
	if err != nil {
		return budget.Summary{}, err
	}

	transactions, err := repo.Transaction.GetTransactionsByMonth(ctx, coupleID, start, end)
	if err != nil {
		return budget.Summary{}, err
	}

	return ComputeSummary(budgetRow, transactions, month), nil
}

func (s *budgetService) UpdateAllocation(ctx context.Context, user entity.UserLoginData, req budget.UpdateAllocationRequest) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.membership.EnsureMember(ctx, req.CoupleID, user.ID); err != nil {
		return entity.Budget{}, err
	}

	monthlyTotal, err := money.FromFloat(req.MonthlyTotal)
	if err != nil {
		return entity.Budget{}, budget.ErrInvalidMonthlyTotal
	}
	his, err := money.FromFloat(req.HisBudget)
	if err != nil {
		return entity.Budget{}, budget.ErrInvalidAmount
	}
	hers, err := money.FromFloat(req.HersBudget)
	if err != nil {
		return entity.Budget{}, budget.ErrInvalidAmount
	}
	shared, err := money.FromFloat(req.SharedBudget)
	if err != nil {
		return entity.Budget{}, budget.ErrInvalidAmount
	}

	if monthlyTotal <= 0 {
		return entity.Budget{}, budget.ErrInvalidMonthlyTotal
	}

	// The persistence layer refuses unbalanced allocations outright;
	// remediation is the client's call, via the difference we return.
	if ok, difference := budget.ValidateAllocation(monthlyTotal, his, hers, shared); !ok {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"difference": difference,
		}).Warn("Rejected unbalanced budget allocation")
		return entity.Budget{}, budget.NewUnbalancedError(difference)
	}

	month := req.Month
	if month == "" {
		month = budget.CurrentMonthKey(time.Now())
	}
	if _, _, err := budget.MonthWindow(month); err != nil {
		return entity.Budget{}, err
	}

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Budget{}, err
	}

	row := entity.Budget{
		CoupleID:     req.CoupleID,
		Month:        month,
		MonthlyTotal: monthlyTotal,
		HisBudget:    his,
		HersBudget:   hers,
		SharedBudget: shared,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := repo.Budget.UpsertBudget(ctx, row); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to upsert budget")
		return entity.Budget{}, budget.ErrUpsertBudget
	}

	s.broadcaster.Broadcast(realtime.Event{
		Type:     realtime.EventBudgetUpdated,
		CoupleID: row.CoupleID,
		Entity:   row,
	})

	return row, nil
}
