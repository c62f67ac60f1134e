package optimistic

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type State string

const (
	StateIdle       State = "idle"
	StateApplied    State = "applied"
	StateConfirmed  State = "confirmed"
	StateRolledBack State = "rolled_back"
)

const tempIDPrefix = "temp-"

// NewTempID returns a provisional id that can never collide with a
// server-assigned one.
func NewTempID() string {
	return fmt.Sprintf("%s%d-%s", tempIDPrefix, time.Now().UnixNano(), uuid.NewString()[:8])
}

func IsTempID(id string) bool {
	return len(id) > len(tempIDPrefix) && id[:len(tempIDPrefix)] == tempIDPrefix
}

// Mutation describes one optimistic write against a cached collection.
// Apply and Revert must be exact inverses over the entries this
// mutation touches; they must not reference entries by position so that
// concurrent mutations cannot clobber each other.
type Mutation[T Entity] struct {
	// Synthesize builds the provisional entity carrying tempID.
	Synthesize func(tempID string) T

	// Apply patches the provisional entity into a snapshot. When nil,
	// the entity is prepended (the create case).
	Apply func(s Snapshot[T], provisional T) Snapshot[T]

	// Revert undoes Apply. When nil, the provisional entry is removed
	// by its temp id.
	Revert func(s Snapshot[T], tempID string) Snapshot[T]

	// Send issues the single background request and returns the
	// authoritative entity.
	Send func(ctx context.Context) (T, error)

	// OnRollback reopens the originating affordance so the user's
	// input is not lost. Called once, after the cache is restored.
	OnRollback func(err error)
}

// Coordinator runs the Applied -> Confirmed | RolledBack state machine
// for every mutation handed to it. It never retries and issues exactly
// one request per call.
type Coordinator[T Entity] struct {
	cache *Cache[T]
	log   *logrus.Logger
}

func NewCoordinator[T Entity](cache *Cache[T], log *logrus.Logger) *Coordinator[T] {
	return &Coordinator[T]{cache: cache, log: log}
}

func (c *Coordinator[T]) Cache() *Cache[T] {
	return c.cache
}

// Mutate applies the optimistic patch, issues the background request
// and reconciles. The patch always happens before the request is
// issued, and confirm/rollback strictly after it settles.
func (c *Coordinator[T]) Mutate(ctx context.Context, m Mutation[T]) (T, State, error) {
	var zero T

	tempID := NewTempID()
	provisional := m.Synthesize(tempID)

	apply := m.Apply
	if apply == nil {
		apply = func(s Snapshot[T], p T) Snapshot[T] { return s.Prepend(p) }
	}
	revert := m.Revert
	if revert == nil {
		revert = func(s Snapshot[T], id string) Snapshot[T] { return s.Remove(id) }
	}

	if !c.cache.Swap(func(s Snapshot[T]) Snapshot[T] { return apply(s, provisional) }) {
		return zero, StateIdle, ErrSessionClosed
	}

	authoritative, err := m.Send(ctx)
	if err != nil {
		c.cache.Swap(func(s Snapshot[T]) Snapshot[T] { return revert(s, tempID) })
		if c.log != nil {
			c.log.WithFields(logrus.Fields{
				"temp_id": tempID,
				"error":   err.Error(),
			}).Warn("Optimistic mutation rolled back")
		}
		if m.OnRollback != nil {
			m.OnRollback(err)
		}
		return zero, StateRolledBack, err
	}

	if !c.cache.Swap(func(s Snapshot[T]) Snapshot[T] { return s.Replace(tempID, authoritative) }) {
		// Session torn down while the request was in flight; the
		// response is stale and must not touch removed UI state.
		return authoritative, StateIdle, nil
	}

	return authoritative, StateConfirmed, nil
}

var ErrSessionClosed = fmt.Errorf("session cache is closed")
