package optimistic

import "sync"

// Entity is anything the cache can hold; matching is always by the
// stable id, never by position.
type Entity interface {
	EntityID() string
}

// Snapshot is an immutable, ordered, id-keyed collection. Every
// transform returns a fresh snapshot so rollback can restore an earlier
// one and renders never observe partial writes.
type Snapshot[T Entity] struct {
	order []string
	items map[string]T
}

func NewSnapshot[T Entity](entities ...T) Snapshot[T] {
	s := Snapshot[T]{
		order: make([]string, 0, len(entities)),
		items: make(map[string]T, len(entities)),
	}
	for _, e := range entities {
		if _, ok := s.items[e.EntityID()]; ok {
			continue
		}
		s.order = append(s.order, e.EntityID())
		s.items[e.EntityID()] = e
	}
	return s
}

func (s Snapshot[T]) clone() Snapshot[T] {
	next := Snapshot[T]{
		order: make([]string, len(s.order)),
		items: make(map[string]T, len(s.items)),
	}
	copy(next.order, s.order)
	for id, e := range s.items {
		next.items[id] = e
	}
	return next
}

func (s Snapshot[T]) Len() int {
	return len(s.order)
}

func (s Snapshot[T]) Get(id string) (T, bool) {
	e, ok := s.items[id]
	return e, ok
}

func (s Snapshot[T]) List() []T {
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// Prepend puts a newly created entity at the head. If the id already
// exists the entry is overwritten in place instead, which makes a
// realtime echo of the same create idempotent.
func (s Snapshot[T]) Prepend(e T) Snapshot[T] {
	next := s.clone()
	id := e.EntityID()
	if _, ok := next.items[id]; ok {
		next.items[id] = e
		return next
	}
	next.order = append([]string{id}, next.order...)
	next.items[id] = e
	return next
}

// Upsert merges by id, keeping the existing slot, or appends when the
// id is new.
func (s Snapshot[T]) Upsert(e T) Snapshot[T] {
	next := s.clone()
	id := e.EntityID()
	if _, ok := next.items[id]; !ok {
		next.order = append(next.order, id)
	}
	next.items[id] = e
	return next
}

func (s Snapshot[T]) Remove(id string) Snapshot[T] {
	if _, ok := s.items[id]; !ok {
		return s
	}
	next := s.clone()
	delete(next.items, id)
	for i, oid := range next.order {
		if oid == id {
			next.order = append(next.order[:i], next.order[i+1:]...)
			break
		}
	}
	return next
}

// Replace swaps a provisional entry for the authoritative one while
// keeping its position. When the server id already arrived through the
// realtime feed the provisional entry is dropped and the existing slot
// overwritten, so the entity never appears twice.
func (s Snapshot[T]) Replace(provisionalID string, authoritative T) Snapshot[T] {
	id := authoritative.EntityID()

	if _, ok := s.items[id]; ok && id != provisionalID {
		return s.Remove(provisionalID).Upsert(authoritative)
	}

	next := s.clone()
	if _, ok := next.items[provisionalID]; !ok {
		return next.Upsert(authoritative)
	}

	delete(next.items, provisionalID)
	next.items[id] = authoritative
	for i, oid := range next.order {
		if oid == provisionalID {
			next.order[i] = id
			break
		}
	}
	return next
}

// Cache owns the current snapshot for one session-scoped collection.
// All writes go through Swap as pure old-to-new transforms; the mutex
// only serialises the pointer swap between the UI path and the realtime
// subscriber.
type Cache[T Entity] struct {
	mu     sync.RWMutex
	snap   Snapshot[T]
	closed bool
}

func NewCache[T Entity](initial Snapshot[T]) *Cache[T] {
	return &Cache[T]{snap: initial}
}

func (c *Cache[T]) View() Snapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Swap applies a pure transform to the current snapshot. Swaps on a
// closed cache are dropped; that is the stale-response guard for
// requests that settle after the owning session is torn down.
func (c *Cache[T]) Swap(transform func(Snapshot[T]) Snapshot[T]) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.snap = transform(c.snap)
	return true
}

func (c *Cache[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Cache[T]) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
