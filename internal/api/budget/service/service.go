package budgetService

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"ourlittleworld/internal/api/budget"
	budgetRepository "ourlittleworld/internal/api/budget/repository"
	"ourlittleworld/internal/entity"
	"ourlittleworld/pkg/realtime"
	"ourlittleworld/pkg/utils"
)

// MembershipChecker is satisfied by the couple service; every entry
// point verifies membership before touching the ledger.
type MembershipChecker interface {
	EnsureMember(ctx context.Context, coupleID string, userID string) error
}

type IBudgetService interface {
	CreateTransaction(ctx context.Context, user entity.UserLoginData, req budget.CreateTransactionRequest) (entity.Transaction, error)
	GetTransactionsByMonth(ctx context.Context, user entity.UserLoginData, coupleID string, month string) ([]entity.Transaction, error)
	UpdateTransaction(ctx context.Context, user entity.UserLoginData, req budget.UpdateTransactionRequest) (entity.Transaction, error)
	DeleteTransaction(ctx context.Context, user entity.UserLoginData, coupleID string, id string) error
	GetSummary(ctx context.Context, user entity.UserLoginData, coupleID string, month string) (budget.Summary, error)
	UpdateAllocation(ctx context.Context, user entity.UserLoginData, req budget.UpdateAllocationRequest) (entity.Budget, error)
}

type budgetService struct {
	log              *logrus.Logger
	budgetRepository budgetRepository.Repository
	membership       MembershipChecker
	broadcaster      realtime.Broadcaster
	utils            utils.IUtils
}

func NewBudgetService(
	log *logrus.Logger,
	br budgetRepository.Repository,
	membership MembershipChecker,
	broadcaster realtime.Broadcaster,
	utils utils.IUtils,
) IBudgetService {
	return &budgetService{
		log:              log,
		budgetRepository: br,
		membership:       membership,
		broadcaster:      broadcaster,
		utils:            utils,
	}
}
