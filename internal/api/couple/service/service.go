package coupleService

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"ourlittleworld/internal/api/couple"
	coupleRepository "ourlittleworld/internal/api/couple/repository"
	"ourlittleworld/internal/entity"
	"ourlittleworld/pkg/bcrypt"
	"ourlittleworld/pkg/redis"
	"ourlittleworld/pkg/smtp"
	"ourlittleworld/pkg/utils"
)

type ICoupleService interface {
	CreateCouple(ctx context.Context, user entity.UserLoginData) (entity.Couple, error)
	GetMyCouple(ctx context.Context, user entity.UserLoginData) (entity.Couple, error)
	Invite(ctx context.Context, user entity.UserLoginData, req couple.InviteRequest) error
	Join(ctx context.Context, user entity.UserLoginData, req couple.JoinRequest) (entity.Couple, error)
	EnsureMember(ctx context.Context, coupleID string, userID string) error
}

type coupleService struct {
	log              *logrus.Logger
	coupleRepository coupleRepository.Repository
	redis            redis.IRedis
	bcrypt           bcrypt.IBcrypt
	smtp             smtp.ItfSmtp
	utils            utils.IUtils
}

func NewCoupleService(
	log *logrus.Logger,
	cr coupleRepository.Repository,
	redis redis.IRedis,
	bcrypt bcrypt.IBcrypt,
	smtp smtp.ItfSmtp,
	utils utils.IUtils,
) ICoupleService {
	return &coupleService{
		log:              log,
		coupleRepository: cr,
		redis:            redis,
		bcrypt:           bcrypt,
		smtp:             smtp,
		utils:            utils,
	}
}
