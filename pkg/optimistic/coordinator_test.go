package optimistic

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/context"
)

type note struct {
	ID   string
	Body string
}

func (n note) EntityID() string { return n.ID }

func snapshotIDs[T Entity](s Snapshot[T]) []string {
	ids := make([]string, 0, s.Len())
	for _, e := range s.List() {
		ids = append(ids, e.EntityID())
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMutateConfirmedReplacesTempID(t *testing.T) {
	cache := NewCache(NewSnapshot(note{ID: "a", Body: "old"}))
	coord := NewCoordinator(cache, nil)

	got, state, err := coord.Mutate(context.Background(), Mutation[note]{
		Synthesize: func(tempID string) note { return note{ID: tempID, Body: "draft"} },
		Send: func(ctx context.Context) (note, error) {
			return note{ID: "srv-1", Body: "draft"}, nil
		},
	})
	if err != nil {
		t.Fatalf("Mutate returned error: %v", err)
	}
	if state != StateConfirmed {
		t.Fatalf("state = %s, want %s", state, StateConfirmed)
	}
	if got.ID != "srv-1" {
		t.Errorf("authoritative id = %s, want srv-1", got.ID)
	}

	final := cache.View()
	if !equalIDs(snapshotIDs(final), []string{"srv-1", "a"}) {
		t.Errorf("snapshot ids = %v, want [srv-1 a]", snapshotIDs(final))
	}
	for _, e := range final.List() {
		if IsTempID(e.EntityID()) {
			t.Errorf("temp id %s left in confirmed snapshot", e.EntityID())
		}
	}
}

func TestMutateRollbackRestoresSnapshot(t *testing.T) {
	before := NewSnapshot(note{ID: "a"}, note{ID: "b"})
	cache := NewCache(before)
	coord := NewCoordinator(cache, nil)

	sendErr := errors.New("upstream down")
	rolledBack := false

	var observed Snapshot[note]
	_, state, err := coord.Mutate(context.Background(), Mutation[note]{
		Synthesize: func(tempID string) note { return note{ID: tempID} },
		Send: func(ctx context.Context) (note, error) {
			// The optimistic patch must be visible before the request settles.
			observed = cache.View()
			return note{}, sendErr
		},
		OnRollback: func(err error) { rolledBack = true },
	})

	if !errors.Is(err, sendErr) {
		t.Fatalf("err = %v, want %v", err, sendErr)
	}
	if state != StateRolledBack {
		t.Fatalf("state = %s, want %s", state, StateRolledBack)
	}
	if observed.Len() != 3 {
		t.Errorf("patch not applied before send: len = %d, want 3", observed.Len())
	}
	if !rolledBack {
		t.Error("OnRollback was not invoked")
	}
	if !equalIDs(snapshotIDs(cache.View()), snapshotIDs(before)) {
		t.Errorf("snapshot after rollback = %v, want %v", snapshotIDs(cache.View()), snapshotIDs(before))
	}
}

func TestConcurrentMutationsDoNotClobber(t *testing.T) {
	cache := NewCache(NewSnapshot[note]())
	coord := NewCoordinator(cache, nil)

	// First mutation confirms while a second one is still provisional.
	_, _, err := coord.Mutate(context.Background(), Mutation[note]{
		Synthesize: func(tempID string) note { return note{ID: tempID, Body: "one"} },
		Send: func(ctx context.Context) (note, error) {
			// Interleave: a second optimistic create lands mid-flight.
			cache.Swap(func(s Snapshot[note]) Snapshot[note] {
				return s.Prepend(note{ID: NewTempID(), Body: "two"})
			})
			return note{ID: "srv-one", Body: "one"}, nil
		},
	})
	if err != nil {
		t.Fatalf("Mutate returned error: %v", err)
	}

	final := cache.View()
	if final.Len() != 2 {
		t.Fatalf("len = %d, want 2", final.Len())
	}
	if _, ok := final.Get("srv-one"); !ok {
		t.Error("confirmed entity missing")
	}
	var temps int
	for _, e := range final.List() {
		if IsTempID(e.EntityID()) {
			temps++
		}
	}
	if temps != 1 {
		t.Errorf("provisional entries = %d, want the untouched second mutation only", temps)
	}
}

func TestRealtimeEchoBeforeResponseIsIdempotent(t *testing.T) {
	cache := NewCache(NewSnapshot[note]())
	coord := NewCoordinator(cache, nil)

	_, _, err := coord.Mutate(context.Background(), Mutation[note]{
		Synthesize: func(tempID string) note { return note{ID: tempID, Body: "hi"} },
		Send: func(ctx context.Context) (note, error) {
			// The realtime push for this very create arrives first.
			cache.Swap(func(s Snapshot[note]) Snapshot[note] {
				return s.Upsert(note{ID: "srv-9", Body: "hi"})
			})
			return note{ID: "srv-9", Body: "hi"}, nil
		},
	})
	if err != nil {
		t.Fatalf("Mutate returned error: %v", err)
	}

	final := cache.View()
	if final.Len() != 1 {
		t.Fatalf("len = %d, want 1 (no duplicate insert)", final.Len())
	}
	if _, ok := final.Get("srv-9"); !ok {
		t.Error("server entity missing after reconcile")
	}
}

func TestUpdateMutationRevertRestoresPreviousValue(t *testing.T) {
	cache := NewCache(NewSnapshot(note{ID: "g1", Body: "before"}))
	coord := NewCoordinator(cache, nil)

	prev, _ := cache.View().Get("g1")
	_, state, err := coord.Mutate(context.Background(), Mutation[note]{
		Synthesize: func(tempID string) note { return note{ID: "g1", Body: "after"} },
		Apply: func(s Snapshot[note], p note) Snapshot[note] {
			return s.Upsert(p)
		},
		Revert: func(s Snapshot[note], tempID string) Snapshot[note] {
			return s.Upsert(prev)
		},
		Send: func(ctx context.Context) (note, error) {
			return note{}, errors.New("rejected")
		},
	})
	if err == nil || state != StateRolledBack {
		t.Fatalf("state = %s, err = %v; want rollback", state, err)
	}

	got, _ := cache.View().Get("g1")
	if got.Body != "before" {
		t.Errorf("body after rollback = %q, want %q", got.Body, "before")
	}
}

func TestClosedCacheDropsLateResponses(t *testing.T) {
	cache := NewCache(NewSnapshot[note]())
	coord := NewCoordinator(cache, nil)

	got, state, err := coord.Mutate(context.Background(), Mutation[note]{
		Synthesize: func(tempID string) note { return note{ID: tempID} },
		Send: func(ctx context.Context) (note, error) {
			// Component unmounts while the request is in flight.
			cache.Close()
			return note{ID: "srv-5"}, nil
		},
	})
	if err != nil {
		t.Fatalf("Mutate returned error: %v", err)
	}
	if state != StateIdle {
		t.Errorf("state = %s, want %s for a stale response", state, StateIdle)
	}
	if got.ID != "srv-5" {
		t.Errorf("authoritative entity should still be returned, got %q", got.ID)
	}
}

func TestNewTempID(t *testing.T) {
	a := NewTempID()
	b := NewTempID()
	if a == b {
		t.Error("temp ids must be unique")
	}
	if !strings.HasPrefix(a, "temp-") {
		t.Errorf("temp id %q lacks prefix", a)
	}
	if !IsTempID(a) || IsTempID("01HZX") {
		t.Error("IsTempID misclassifies ids")
	}
}

func TestSnapshotTransformsArePure(t *testing.T) {
	base := NewSnapshot(note{ID: "a"})
	_ = base.Prepend(note{ID: "b"})
	_ = base.Upsert(note{ID: "c"})
	_ = base.Remove("a")

	if base.Len() != 1 {
		t.Errorf("base snapshot mutated: len = %d, want 1", base.Len())
	}
	if _, ok := base.Get("a"); !ok {
		t.Error("base snapshot lost entry a")
	}
}

func TestReplaceAfterEchoLeavesReceiverIntact(t *testing.T) {
	// The realtime echo already upserted srv-1 and a concurrent
	// transform already dropped the provisional entry; Replace must
	// still hand back a fresh snapshot.
	base := NewSnapshot(note{ID: "srv-1", Body: "original"})

	next := base.Replace("temp-gone", note{ID: "srv-1", Body: "changed"})

	if got, _ := base.Get("srv-1"); got.Body != "original" {
		t.Errorf("receiver snapshot mutated in place: body = %q, want %q", got.Body, "original")
	}
	if got, _ := next.Get("srv-1"); got.Body != "changed" {
		t.Errorf("returned snapshot body = %q, want %q", got.Body, "changed")
	}
	if next.Len() != 1 {
		t.Errorf("returned snapshot len = %d, want 1", next.Len())
	}

	// Same branch with the provisional entry still present: both the
	// duplicate removal and the overwrite stay off the receiver.
	withTemp := NewSnapshot(note{ID: "srv-1", Body: "original"}, note{ID: "temp-x", Body: "draft"})
	reconciled := withTemp.Replace("temp-x", note{ID: "srv-1", Body: "changed"})

	if withTemp.Len() != 2 {
		t.Errorf("receiver snapshot len = %d, want 2", withTemp.Len())
	}
	if got, _ := withTemp.Get("srv-1"); got.Body != "original" {
		t.Errorf("receiver entry overwritten: body = %q, want %q", got.Body, "original")
	}
	if reconciled.Len() != 1 {
		t.Errorf("reconciled snapshot len = %d, want 1", reconciled.Len())
	}
	if got, _ := reconciled.Get("srv-1"); got.Body != "changed" {
		t.Errorf("reconciled body = %q, want %q", got.Body, "changed")
	}
}
