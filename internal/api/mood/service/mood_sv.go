package moodService

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"ourlittleworld/internal/api/mood"
	"ourlittleworld/internal/entity"
	contextPkg "ourlittleworld/pkg/context"
	"ourlittleworld/pkg/realtime"
)

const maxHistoryDays = 90

// CheckIn records today's mood, or the given date's. A second check-in
// for the same day overwrites the first.
func (s *moodService) CheckIn(ctx context.Context, user entity.UserLoginData, req mood.CheckInRequest) (entity.MoodEntry, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.membership.EnsureMember(ctx, req.CoupleID, user.ID); err != nil {
		return entity.MoodEntry{}, err
	}

	entryDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.EntryDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EntryDate)
		if err != nil {
			return entity.MoodEntry{}, mood.ErrInvalidDate
		}
		entryDate = parsed
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate mood entry ID")
		return entity.MoodEntry{}, mood.ErrUpsertMood
	}

	entry := entity.MoodEntry{
		ID:        id,
		CoupleID:  req.CoupleID,
		UserID:    user.ID,
		EntryDate: entryDate,
		Mood:      req.Mood,
		Note:      req.Note,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := entry.Validate(); err != nil {
		return entity.MoodEntry{}, err
	}

	repo, err := s.moodRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.MoodEntry{}, err
	}

	if err := repo.Mood.UpsertMood(ctx, entry); err != nil {
		return entity.MoodEntry{}, mood.ErrUpsertMood
	}

	s.broadcaster.Broadcast(realtime.Event{
		Type:     realtime.EventMoodUpdated,
		CoupleID: entry.CoupleID,
		Entity:   entry,
	})

	return entry, nil
}

func (s *moodService) GetHistory(ctx context.Context, user entity.UserLoginData, coupleID string, days int) ([]entity.MoodEntry, error) {
	if err := s.membership.EnsureMember(ctx, coupleID, user.ID); err != nil {
		return nil, err
	}

	if days <= 0 || days > maxHistoryDays {
		return nil, mood.ErrInvalidWindow
	}

	end := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	start := end.AddDate(0, 0, -days)

	repo, err := s.moodRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	return repo.Mood.GetMoodsByDateRange(ctx, coupleID, start, end)
}
