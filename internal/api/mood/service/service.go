package moodService

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	budgetService "ourlittleworld/internal/api/budget/service"
	"ourlittleworld/internal/api/mood"
	moodRepository "ourlittleworld/internal/api/mood/repository"
	"ourlittleworld/internal/entity"
	"ourlittleworld/pkg/realtime"
	"ourlittleworld/pkg/utils"
)

type IMoodService interface {
	CheckIn(ctx context.Context, user entity.UserLoginData, req mood.CheckInRequest) (entity.MoodEntry, error)
	GetHistory(ctx context.Context, user entity.UserLoginData, coupleID string, days int) ([]entity.MoodEntry, error)
}

type moodService struct {
	log            *logrus.Logger
	moodRepository moodRepository.Repository
	membership     budgetService.MembershipChecker
	broadcaster    realtime.Broadcaster
	utils          utils.IUtils
}

func NewMoodService(
	log *logrus.Logger,
	mr moodRepository.Repository,
	membership budgetService.MembershipChecker,
	broadcaster realtime.Broadcaster,
	utils utils.IUtils,
) IMoodService {
	return &moodService{
		log:            log,
		moodRepository: mr,
		membership:     membership,
		broadcaster:    broadcaster,
		utils:          utils,
	}
}
