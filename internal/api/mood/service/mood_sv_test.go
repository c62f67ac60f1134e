package moodService

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"ourlittleworld/internal/api/mood"
	moodRepository "ourlittleworld/internal/api/mood/repository"
	"ourlittleworld/internal/entity"
	"ourlittleworld/pkg/realtime"
	"ourlittleworld/pkg/utils"
)

// fakeMoodStore keeps one entry per (user, entry date), mirroring the
// uniqueness the mood table enforces.
type fakeMoodStore struct {
	entries map[string]entity.MoodEntry
}

func moodKey(userID string, entryDate time.Time) string {
	return userID + "|" + entryDate.Format("2006-01-02")
}

func (f *fakeMoodStore) UpsertMood(_ context.Context, entry entity.MoodEntry) error {
	f.entries[moodKey(entry.UserID, entry.EntryDate)] = entry
	return nil
}

func (f *fakeMoodStore) GetMoodsByDateRange(_ context.Context, coupleID string, start, end time.Time) ([]entity.MoodEntry, error) {
	out := make([]entity.MoodEntry, 0)
	for _, e := range f.entries {
		if e.CoupleID == coupleID && !e.EntryDate.Before(start) && e.EntryDate.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeMoodRepository struct {
	store *fakeMoodStore
}

func (f *fakeMoodRepository) NewClient(tx bool) (moodRepository.Client, error) {
	return moodRepository.Client{
		Mood:     f.store,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type allowAllMembership struct{}

func (allowAllMembership) EnsureMember(_ context.Context, _ string, _ string) error {
	return nil
}

type recordingBroadcaster struct {
	events []realtime.Event
}

func (b *recordingBroadcaster) Broadcast(event realtime.Event) {
	b.events = append(b.events, event)
}

func newTestMoodService() (IMoodService, *fakeMoodStore, *recordingBroadcaster) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	store := &fakeMoodStore{entries: make(map[string]entity.MoodEntry)}
	broadcaster := &recordingBroadcaster{}

	svc := NewMoodService(log, &fakeMoodRepository{store: store}, allowAllMembership{}, broadcaster, utils.New())
	return svc, store, broadcaster
}

func TestCheckInSameDayOverwrites(t *testing.T) {
	svc, store, broadcaster := newTestMoodService()
	ctx := context.Background()
	user := entity.UserLoginData{ID: "user-1", Email: "one@pair.test"}

	first, err := svc.CheckIn(ctx, user, mood.CheckInRequest{
		CoupleID:  "couple-1",
		EntryDate: "2026-03-01",
		Mood:      "happy",
		Note:      "morning",
	})
	if err != nil {
		t.Fatalf("first check-in failed: %v", err)
	}

	second, err := svc.CheckIn(ctx, user, mood.CheckInRequest{
		CoupleID:  "couple-1",
		EntryDate: "2026-03-01",
		Mood:      "tired",
		Note:      "evening",
	})
	if err != nil {
		t.Fatalf("second check-in failed: %v", err)
	}

	if len(store.entries) != 1 {
		t.Fatalf("entries = %d, want 1 (same user and day must collapse)", len(store.entries))
	}

	stored := store.entries[moodKey("user-1", first.EntryDate)]
	if stored.Mood != "tired" || stored.Note != "evening" {
		t.Errorf("stored entry = %q/%q, want the later check-in", stored.Mood, stored.Note)
	}
	if second.EntryDate != first.EntryDate {
		t.Errorf("entry dates differ: %v vs %v", second.EntryDate, first.EntryDate)
	}
	if len(broadcaster.events) != 2 || broadcaster.events[0].Type != realtime.EventMoodUpdated {
		t.Errorf("broadcasts = %d (%v), want two mood updates", len(broadcaster.events), broadcaster.events)
	}
}

func TestCheckInKeyIsPerUser(t *testing.T) {
	svc, store, _ := newTestMoodService()
	ctx := context.Background()

	checkIns := []struct {
		userID string
		date   string
		mood   string
	}{
		{"user-1", "2026-03-01", "happy"},
		{"user-2", "2026-03-01", "stressed"},
		{"user-1", "2026-03-02", "calm"},
	}
	for _, c := range checkIns {
		_, err := svc.CheckIn(ctx, entity.UserLoginData{ID: c.userID}, mood.CheckInRequest{
			CoupleID:  "couple-1",
			EntryDate: c.date,
			Mood:      c.mood,
		})
		if err != nil {
			t.Fatalf("check-in %s/%s failed: %v", c.userID, c.date, err)
		}
	}

	if len(store.entries) != 3 {
		t.Fatalf("entries = %d, want 3 (partners and days do not collide)", len(store.entries))
	}

	date, _ := time.Parse("2006-01-02", "2026-03-01")
	if got := store.entries[moodKey("user-2", date)]; got.Mood != "stressed" {
		t.Errorf("partner entry mood = %q, want %q", got.Mood, "stressed")
	}
}

func TestCheckInDefaultsToToday(t *testing.T) {
	svc, store, _ := newTestMoodService()

	entry, err := svc.CheckIn(context.Background(), entity.UserLoginData{ID: "user-1"}, mood.CheckInRequest{
		CoupleID: "couple-1",
		Mood:     "okay",
	})
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if !entry.EntryDate.Equal(today) {
		t.Errorf("entry date = %v, want %v", entry.EntryDate, today)
	}
	if _, ok := store.entries[moodKey("user-1", today)]; !ok {
		t.Error("entry not stored under today's key")
	}
}

func TestCheckInRejectsMalformedDate(t *testing.T) {
	svc, store, _ := newTestMoodService()

	_, err := svc.CheckIn(context.Background(), entity.UserLoginData{ID: "user-1"}, mood.CheckInRequest{
		CoupleID:  "couple-1",
		EntryDate: "03/01/2026",
		Mood:      "happy",
	})
	if !errors.Is(err, mood.ErrInvalidDate) {
		t.Fatalf("err = %v, want %v", err, mood.ErrInvalidDate)
	}
	if len(store.entries) != 0 {
		t.Errorf("entries = %d, want 0", len(store.entries))
	}
}

func TestGetHistoryWindow(t *testing.T) {
	svc, store, _ := newTestMoodService()
	ctx := context.Background()
	user := entity.UserLoginData{ID: "user-1"}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, e := range []entity.MoodEntry{
		{ID: "m1", CoupleID: "couple-1", UserID: "user-1", EntryDate: today, Mood: "happy"},
		{ID: "m2", CoupleID: "couple-1", UserID: "user-2", EntryDate: today.AddDate(0, 0, -3), Mood: "tired"},
	} {
		store.entries[moodKey(e.UserID, e.EntryDate)] = e
	}

	got, err := svc.GetHistory(ctx, user, "couple-1", 1)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "m1" {
		t.Errorf("one-day window = %v, want just today's entry", got)
	}

	got, err = svc.GetHistory(ctx, user, "couple-1", 7)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("seven-day window = %d entries, want 2", len(got))
	}

	for _, days := range []int{0, -1, 91} {
		if _, err := svc.GetHistory(ctx, user, "couple-1", days); !errors.Is(err, mood.ErrInvalidWindow) {
			t.Errorf("days = %d: err = %v, want %v", days, err, mood.ErrInvalidWindow)
		}
	}
}
