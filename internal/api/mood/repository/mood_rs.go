package moodRepository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"ourlittleworld/internal/entity"
	contextPkg "ourlittleworld/pkg/context"
)

type MoodDB struct {
	ID        sql.NullString `db:"id"`
	CoupleID  sql.NullString `db:"couple_id"`
	UserID    sql.NullString `db:"user_id"`
	EntryDate time.Time      `db:"entry_date"`
	Mood      sql.NullString `db:"mood"`
	Note      sql.NullString `db:"note"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (r *moodRepository) UpsertMood(c context.Context, entry entity.MoodEntry) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         entry.ID,
		"couple_id":  entry.CoupleID,
		"user_id":    entry.UserID,
		"entry_date": entry.EntryDate,
		"mood":       entry.Mood,
		"note":       entry.Note,
		"created_at": time.Now(),
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpsertMood, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpsertMood named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when upserting mood entry")
		return err
	}

	return nil
}

func (r *moodRepository) GetMoodsByDateRange(c context.Context, coupleID string, start, end time.Time) ([]entity.MoodEntry, error) {
	requestID := contextPkg.GetRequestID(c)
	var entries []MoodDB

	argsKV := map[string]interface{}{
		"couple_id":  coupleID,
		"start_date": start,
		"end_date":   end,
	}

	query, args, err := sqlx.Named(queryGetMoodsByDateRange, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetMoodsByDateRange named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &entries, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetMoodsByDateRange execution err")
		return nil, err
	}

	result := make([]entity.MoodEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, r.makeMoodEntry(entry))
	}

	return result, nil
}

func (r *moodRepository) makeMoodEntry(entry MoodDB) entity.MoodEntry {
	return entity.MoodEntry{
		ID:        entry.ID.String,
		CoupleID:  entry.CoupleID.String,
		UserID:    entry.UserID.String,
		EntryDate: entry.EntryDate,
		Mood:      entry.Mood.String,
		Note:      entry.Note.String,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}
