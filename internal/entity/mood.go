package entity

import (
	"time"

	"ourlittleworld/internal/api/mood"
)

// MoodEntry is one partner's check-in for one calendar day; the
// (user, entry_date) pair is unique and later check-ins overwrite.
type MoodEntry struct {
	ID        string    `json:"id"`
	CoupleID  string    `json:"couple_id"`
	UserID    string    `json:"user_id"`
	EntryDate time.Time `json:"entry_date"`
	Mood      string    `json:"mood"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m MoodEntry) EntityID() string { return m.ID }

func (m *MoodEntry) Validate() error {
	if m.Mood == "" {
		return mood.ErrMissingMood
	}

	if m.EntryDate.IsZero() {
		return mood.ErrMissingDate
	}

	return nil
}
