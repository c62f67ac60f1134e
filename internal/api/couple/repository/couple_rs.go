package coupleRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"ourlittleworld/internal/api/couple"
	"ourlittleworld/internal/entity"
	contextPkg "ourlittleworld/pkg/context"
)

type CoupleDB struct {
	ID        sql.NullString `db:"id"`
	InviterID sql.NullString `db:"inviter_id"`
	PartnerID sql.NullString `db:"partner_id"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (r *coupleRepository) CreateCouple(c context.Context, coupleRow entity.Couple) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         coupleRow.ID,
		"inviter_id": coupleRow.InviterID,
		"partner_id": coupleRow.PartnerID,
		"created_at": time.Now(),
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateCouple, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateCouple named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating couple")
		return err
	}

	return nil
}

func (r *coupleRepository) GetCoupleByID(c context.Context, id string) (entity.Couple, error) {
	requestID := contextPkg.GetRequestID(c)
	var coupleRow CoupleDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetCoupleByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCoupleByID named query preparation err")
		return entity.Couple{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&coupleRow); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("GetCoupleByID no rows found")
			return entity.Couple{}, couple.ErrCoupleNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCoupleByID execution err")
		return entity.Couple{}, err
	}

	return r.makeCouple(coupleRow), nil
}

func (r *coupleRepository) GetCoupleByMember(c context.Context, userID string) (entity.Couple, error) {
	requestID := contextPkg.GetRequestID(c)
	var coupleRow CoupleDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetCoupleByMember, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCoupleByMember named query preparation err")
		return entity.Couple{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&coupleRow); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Couple{}, couple.ErrCoupleNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCoupleByMember execution err")
		return entity.Couple{}, err
	}

	return r.makeCouple(coupleRow), nil
}

func (r *coupleRepository) AttachPartner(c context.Context, coupleID string, partnerID string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         coupleID,
		"partner_id": partnerID,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryAttachPartner, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("AttachPartner named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("AttachPartner execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("AttachPartner rows affected err")
		return err
	}

	if rowsAffected == 0 {
		// Either the couple is gone or a partner joined first.
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("AttachPartner no rows affected")
		return couple.ErrCoupleFull
	}

	return nil
}

func (r *coupleRepository) makeCouple(coupleRow CoupleDB) entity.Couple {
	return entity.Couple{
		ID:        coupleRow.ID.String,
		InviterID: coupleRow.InviterID.String,
		PartnerID: coupleRow.PartnerID.String,
		CreatedAt: coupleRow.CreatedAt,
		UpdatedAt: coupleRow.UpdatedAt,
	}
}
