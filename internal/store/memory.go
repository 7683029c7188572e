package store

import (
	"sync"
	"time"

	"torino-tile-backend/internal/intake"
)

type intakeEntry struct {
	state     intake.State
	updatedAt time.Time
}

// MemoryStore holds per-session state that only needs to live as long as the
// process: the intake dialogue state and the staff-authentication flag. All
// maps are guarded by one RWMutex, so individual operations are safe across
// sessions. A load-compute-save cycle is not atomic; a session is assumed to
// have at most one utterance in flight, which the push-to-talk client enforces.
type MemoryStore struct {
	mu sync.RWMutex
	// Username associated with session after staff login
	staffBySession map[string]string
	// In-progress intake dialogues, expired after ttl of inactivity
	intakeBySession map[string]intakeEntry
	ttl             time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		staffBySession:  make(map[string]string),
		intakeBySession: make(map[string]intakeEntry),
		ttl:             ttl,
	}
}

// Staff authentication

func (m *MemoryStore) SetStaff(sessionID, username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staffBySession[sessionID] = username
}

func (m *MemoryStore) ClearStaff(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.staffBySession, sessionID)
	delete(m.intakeBySession, sessionID)
}

func (m *MemoryStore) StaffUsername(sessionID string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.staffBySession[sessionID]
}

func (m *MemoryStore) IsStaffAuthenticated(sessionID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.staffBySession[sessionID]
	return ok
}

// Intake dialogue state

// Load returns a copy of the session's dialogue state if present and not
// expired. Expired entries are dropped so an abandoned intake does not
// resume days later.
func (m *MemoryStore) Load(sessionID string) (intake.State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.intakeBySession[sessionID]
	if !ok {
		return intake.State{}, false
	}
	if m.ttl > 0 && time.Since(e.updatedAt) > m.ttl {
		delete(m.intakeBySession, sessionID)
		return intake.State{}, false
	}
	return e.state.Clone(), true
}

func (m *MemoryStore) Save(sessionID string, st intake.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.intakeBySession[sessionID] = intakeEntry{state: st.Clone(), updatedAt: time.Now()}
}

func (m *MemoryStore) Clear(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.intakeBySession, sessionID)
}
