package coupleService

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"ourlittleworld/internal/api/couple"
	"ourlittleworld/internal/entity"
	contextPkg "ourlittleworld/pkg/context"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const inviteTTL = 24 * time.Hour

// invitePayload is what SetInvite stores under the partner's email. Only
// the bcrypt hash of the code ever reaches Redis.
type invitePayload struct {
	CoupleID string `json:"couple_id"`
	CodeHash string `json:"code_hash"`
}

func (s *coupleService) CreateCouple(ctx context.Context, user entity.UserLoginData) (entity.Couple, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.coupleRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Couple{}, err
	}

	if _, err := repo.Couple.GetCoupleByMember(ctx, user.ID); err == nil {
		return entity.Couple{}, couple.ErrAlreadyPaired
	} else if !errors.Is(err, couple.ErrCoupleNotFound) {
		return entity.Couple{}, err
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate couple ID")
		return entity.Couple{}, couple.ErrCreateCouple
	}

	coupleRow := entity.Couple{
		ID:        id,
		InviterID: user.ID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := repo.Couple.CreateCouple(ctx, coupleRow); err != nil {
		return entity.Couple{}, couple.ErrCreateCouple
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"couple_id":  coupleRow.ID,
	}).Info("Couple created")

	return coupleRow, nil
}

func (s *coupleService) GetMyCouple(ctx context.Context, user entity.UserLoginData) (entity.Couple, error) {
	repo, err := s.coupleRepository.NewClient(false)
	if err != nil {
		return entity.Couple{}, err
	}

	return repo.Couple.GetCoupleByMember(ctx, user.ID)
}

func (s *coupleService) Invite(ctx context.Context, user entity.UserLoginData, req couple.InviteRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	if req.PartnerEmail == user.Email {
		return couple.ErrSelfInvite
	}

	if err := s.EnsureMember(ctx, req.CoupleID, user.ID); err != nil {
		return err
	}

	repo, err := s.coupleRepository.NewClient(false)
	if err != nil {
		return err
	}

	coupleRow, err := repo.Couple.GetCoupleByID(ctx, req.CoupleID)
	if err != nil {
		return err
	}
	if coupleRow.IsFull() {
		return couple.ErrCoupleFull
	}

	code, err := s.utils.NewInviteCode()
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate invite code")
		return couple.ErrSendInvite
	}

	hash, err := s.bcrypt.HashSecret(code)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash invite code")
		return couple.ErrSendInvite
	}

	payload, err := json.Marshal(invitePayload{
		CoupleID: req.CoupleID,
		CodeHash: hash,
	})
	if err != nil {
		return couple.ErrSendInvite
	}

	if err := s.redis.SetInvite(ctx, req.PartnerEmail, string(payload), inviteTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to store invite")
		return couple.ErrSendInvite
	}

	if err := s.smtp.SendInvite(req.PartnerEmail, user.Name, code); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to send invite mail")
		return couple.ErrSendInvite
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"couple_id":  req.CoupleID,
	}).Info("Invite sent")

	return nil
}

func (s *coupleService) Join(ctx context.Context, user entity.UserLoginData, req couple.JoinRequest) (entity.Couple, error) {
	requestID := contextPkg.GetRequestID(ctx)

	raw, err := s.redis.GetInvite(ctx, user.Email)
	if err != nil {
		return entity.Couple{}, couple.ErrInviteNotFound
	}

	var payload invitePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Corrupt invite payload")
		return entity.Couple{}, couple.ErrInviteNotFound
	}

	if err := s.bcrypt.CompareSecret(payload.CodeHash, req.Code); err != nil {
		return entity.Couple{}, couple.ErrInvalidInviteCode
	}

	repo, err := s.coupleRepository.NewClient(false)
	if err != nil {
		return entity.Couple{}, err
	}

	if _, err := repo.Couple.GetCoupleByMember(ctx, user.ID); err == nil {
		return entity.Couple{}, couple.ErrAlreadyPaired
	} else if !errors.Is(err, couple.ErrCoupleNotFound) {
		return entity.Couple{}, err
	}

	if err := repo.Couple.AttachPartner(ctx, payload.CoupleID, user.ID); err != nil {
		return entity.Couple{}, err
	}

	// The code is single use; burn it even though the TTL would reap it.
	if err := s.redis.DeleteInvite(ctx, user.Email); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to delete redeemed invite")
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"couple_id":  payload.CoupleID,
	}).Info("Partner joined couple")

	return repo.Couple.GetCoupleByID(ctx, payload.CoupleID)
}

func (s *coupleService) EnsureMember(ctx context.Context, coupleID string, userID string) error {
	repo, err := s.coupleRepository.NewClient(false)
	if err != nil {
		return err
	}

	coupleRow, err := repo.Couple.GetCoupleByID(ctx, coupleID)
	if err != nil {
		return err
	}

	if !coupleRow.HasMember(userID) {
		return couple.ErrNotCoupleMember
	}

	return nil
}
