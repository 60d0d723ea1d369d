package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTTL         = 30 * time.Minute
	DefaultMaxSessions = 10000
)

type entry struct {
	sess     *Session
	lastSeen time.Time
}

// Store keeps sessions in process memory. Nothing survives a restart.
// Sessions idle for longer than the TTL are dropped by Sweep, and the oldest
// session is evicted when the store is full.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	zoom     int
	ttl      time.Duration
	max      int
	now      func() time.Time
}

type StoreOption func(*Store)

// WithTTL sets how long an unused session is kept. Non-positive values keep
// the default.
func WithTTL(d time.Duration) StoreOption {
	return func(st *Store) {
		if d > 0 {
			st.ttl = d
		}
	}
}

// WithMaxSessions caps the number of live sessions.
func WithMaxSessions(n int) StoreOption {
	return func(st *Store) {
		if n > 0 {
			st.max = n
		}
	}
}

func WithClock(now func() time.Time) StoreOption {
	return func(st *Store) { st.now = now }
}

func NewStore(zoom int, opts ...StoreOption) *Store {
	st := &Store{
		sessions: make(map[string]*entry),
		zoom:     zoom,
		ttl:      DefaultTTL,
		max:      DefaultMaxSessions,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// Get returns the session for id, creating a fresh one under a new ID when id
// is empty, unknown or expired. The second result is true when a session was
// created.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	if e, ok := st.sessions[id]; ok && id != "" {
		if now.Sub(e.lastSeen) <= st.ttl {
			e.lastSeen = now
			return e.sess, false
		}
		delete(st.sessions, id)
	}

	if len(st.sessions) >= st.max {
		st.evictOldest()
	}
	s := New(uuid.NewString(), st.zoom)
	st.sessions[s.ID] = &entry{sess: s, lastSeen: now}
	return s, true
}

// caller holds st.mu
func (st *Store) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, e := range st.sessions {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	delete(st.sessions, oldestID)
}

// Sweep drops every session idle for longer than the TTL and returns how many
// were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	removed := 0
	for id, e := range st.sessions {
		if now.Sub(e.lastSeen) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
