package goalService

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	budgetService "ourlittleworld/internal/api/budget/service"
	"ourlittleworld/internal/api/goal"
	goalRepository "ourlittleworld/internal/api/goal/repository"
	"ourlittleworld/internal/entity"
	"ourlittleworld/pkg/realtime"
	"ourlittleworld/pkg/utils"
)

type IGoalService interface {
	CreateGoal(ctx context.Context, user entity.UserLoginData, req goal.CreateGoalRequest) (entity.SavingsGoal, error)
	GetGoalsByCouple(ctx context.Context, user entity.UserLoginData, coupleID string) ([]entity.SavingsGoal, error)
	UpdateGoal(ctx context.Context, user entity.UserLoginData, req goal.UpdateGoalRequest) (entity.SavingsGoal, error)
	Contribute(ctx context.Context, user entity.UserLoginData, req goal.ContributeRequest) (entity.SavingsGoal, error)
	CompleteGoal(ctx context.Context, user entity.UserLoginData, coupleID string, id string) (entity.SavingsGoal, error)
	DeleteGoal(ctx context.Context, user entity.UserLoginData, coupleID string, id string) error
}

type goalService struct {
	log            *logrus.Logger
	goalRepository goalRepository.Repository
	membership     budgetService.MembershipChecker
	broadcaster    realtime.Broadcaster
	utils          utils.IUtils
}

func NewGoalService(
	log *logrus.Logger,
	gr goalRepository.Repository,
	membership budgetService.MembershipChecker,
	broadcaster realtime.Broadcaster,
	utils utils.IUtils,
) IGoalService {
	return &goalService{
		log:            log,
		goalRepository: gr,
		membership:     membership,
		broadcaster:    broadcaster,
		utils:          utils,
	}
}
