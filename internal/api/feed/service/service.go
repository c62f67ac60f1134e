package feedService

import (
	"mime/multipart"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	budgetService "ourlittleworld/internal/api/budget/service"
	"ourlittleworld/internal/api/feed"
	feedRepository "ourlittleworld/internal/api/feed/repository"
	"ourlittleworld/internal/entity"
	"ourlittleworld/pkg/realtime"
	"ourlittleworld/pkg/s3"
	"ourlittleworld/pkg/utils"
)

type IFeedService interface {
	CreatePost(ctx context.Context, user entity.UserLoginData, coupleID string, caption string, images []*multipart.FileHeader) (entity.Post, error)
	GetPostsByCouple(ctx context.Context, user entity.UserLoginData, coupleID string, limit int, offset int) ([]entity.Post, error)
	UpdatePost(ctx context.Context, user entity.UserLoginData, req feed.UpdatePostRequest) (entity.Post, error)
	DeletePost(ctx context.Context, user entity.UserLoginData, coupleID string, id string) error
	ToggleLike(ctx context.Context, user entity.UserLoginData, req feed.ToggleLikeRequest) (entity.Post, error)
	AddComment(ctx context.Context, user entity.UserLoginData, req feed.AddCommentRequest) (entity.Post, error)
	AddReply(ctx context.Context, user entity.UserLoginData, req feed.AddReplyRequest) (entity.Post, error)
}

type feedService struct {
	log            *logrus.Logger
	feedRepository feedRepository.Repository
	membership     budgetService.MembershipChecker
	broadcaster    realtime.Broadcaster
	s3             s3.ItfS3
	utils          utils.IUtils
}

func NewFeedService(
	log *logrus.Logger,
	fr feedRepository.Repository,
	membership budgetService.MembershipChecker,
	broadcaster realtime.Broadcaster,
	s3 s3.ItfS3,
	utils utils.IUtils,
) IFeedService {
	return &feedService{
		log:            log,
		feedRepository: fr,
		membership:     membership,
		broadcaster:    broadcaster,
		s3:             s3,
		utils:          utils,
	}
}
