package tools

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/job-discovery/internal/domain/job"
)

const (
	defaultSessionTTL  = 30 * time.Minute
	defaultMaxSessions = 1000
)

// SessionRegistry keeps discovery sessions addressable by id between tool calls.
// Idle sessions are evicted lazily on access.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	max      int
	now      func() time.Time
}

type sessionEntry struct {
	session  *job.Session
	lastUsed time.Time
}

// NewSessionRegistry creates a registry; non-positive values fall back to defaults
func NewSessionRegistry(ttl time.Duration, maxSessions int) *SessionRegistry {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	return &SessionRegistry{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		max:      maxSessions,
		now:      time.Now,
	}
}

// Add stores session and returns its id. The least recently used session
// is evicted when the registry is full.
func (r *SessionRegistry) Add(session *job.Session) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictExpired(now)
	if len(r.sessions) >= r.max {
		r.evictOldest()
	}

	id := uuid.NewString()
	r.sessions[id] = &sessionEntry{session: session, lastUsed: now}
	return id
}

// Get returns the session for id and refreshes its idle timer
func (r *SessionRegistry) Get(id string) (*job.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictExpired(now)

	entry, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastUsed = now
	return entry.session, true
}

// Len returns the number of live sessions
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired(r.now())
	return len(r.sessions)
}

func (r *SessionRegistry) evictExpired(now time.Time) {
	for id, entry := range r.sessions {
		if now.Sub(entry.lastUsed) > r.ttl {
			delete(r.sessions, id)
		}
	}
}

func (r *SessionRegistry) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, entry := range r.sessions {
		if oldestID == "" || entry.lastUsed.Before(oldest) {
			oldestID, oldest = id, entry.lastUsed
		}
	}
	delete(r.sessions, oldestID)
}
