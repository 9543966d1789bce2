// Package session owns the per-session pull-entry lists. Each list
// is mutated only by discrete user actions, each processed to
// completion under the manager lock.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/raidmarks/backend/internal/clock"
	"github.com/raidmarks/backend/internal/export"
	"github.com/raidmarks/backend/internal/models"
)

// MaxSessions caps concurrent sessions to bound memory.
const MaxSessions = 100

// SessionMaxAge is how long an untouched session survives cleanup.
const SessionMaxAge = 30 * time.Minute

// State holds one session's metadata and its entry list.
type State struct {
	Session      *models.MarkerSession
	Entries      []models.PullEntry
	LastAccessed time.Time
}

// Manager tracks active marker sessions.
type Manager struct {
	sessions map[string]*State
	mu       sync.RWMutex
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*State)}
}

// Create starts a new empty session.
func (m *Manager) Create() *models.MarkerSession {
	m.cleanupIfAtCapacity()

	id := uuid.New().String()
	sess := models.NewMarkerSession(id)

	m.mu.Lock()
	m.sessions[id] = &State{Session: sess, LastAccessed: time.Now()}
	m.mu.Unlock()

	fmt.Printf("[Session %s] created\n", id[:8])
	return sess
}

// Get returns the session metadata.
func (m *Manager) Get(id string) (*models.MarkerSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	return state.Session, true
}

// Touch extends a session's lifetime. Returns false for unknown IDs.
func (m *Manager) Touch(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[id]
	if !ok {
		return false
	}
	state.LastAccessed = time.Now()
	return true
}

// Delete removes a session entirely.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// SetEntries replaces the session's entry list.
func (m *Manager) SetEntries(id string, entries []models.PullEntry) ([]models.PullEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	state.Entries = append([]models.PullEntry(nil), entries...)
	m.noteUpdate(state)
	return copyEntries(state.Entries), true
}

// AppendEntries adds entries to the end of the session's list.
func (m *Manager) AppendEntries(id string, entries []models.PullEntry) ([]models.PullEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	state.Entries = append(state.Entries, entries...)
	m.noteUpdate(state)
	return copyEntries(state.Entries), true
}

// AddEntry appends a manually entered pull. The pull time is
// normalized first, so "19:46" and "7:46" are both accepted.
func (m *Manager) AddEntry(id, name, pullTime string) (*models.PullEntry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[id]
	if !ok {
		return nil, false, nil
	}

	normalized, err := clock.Normalize(pullTime)
	if err != nil {
		return nil, true, err
	}

	entry := models.PullEntry{
		ID:       uuid.New().String()[:13],
		Name:     name,
		PullTime: normalized,
	}
	state.Entries = append(state.Entries, entry)
	m.noteUpdate(state)
	return &entry, true, nil
}

// DeleteEntry removes exactly the entry with the given ID, keeping
// the relative order of the rest. The second return distinguishes an
// unknown session from an unknown entry.
func (m *Manager) DeleteEntry(id, entryID string) (entryFound, sessionFound bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[id]
	if !ok {
		return false, false
	}

	for i, e := range state.Entries {
		if e.ID == entryID {
			state.Entries = append(state.Entries[:i], state.Entries[i+1:]...)
			m.noteUpdate(state)
			return true, true
		}
	}
	return false, true
}

// ClearEntries empties the session's list.
func (m *Manager) ClearEntries(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[id]
	if !ok {
		return false
	}
	state.Entries = nil
	m.noteUpdate(state)
	return true
}

// Entries returns a copy of the ordered entry list.
func (m *Manager) Entries(id string) ([]models.PullEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	return copyEntries(state.Entries), true
}

// Generate renders the marker text for the session against a
// reference start time. It always reads the current list, so output
// reflects any deletions since the last call.
func (m *Manager) Generate(id, referenceTime string) (string, bool, error) {
	entries, ok := m.Entries(id)
	if !ok {
		return "", false, nil
	}
	out, err := export.Render(referenceTime, entries)
	return out, true, err
}

// CleanupOldSessions drops sessions untouched for longer than maxAge.
func (m *Manager) CleanupOldSessions(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	for id, state := range m.sessions {
		if state.LastAccessed.Before(cutoff) {
			delete(m.sessions, id)
			fmt.Printf("[Session %s] cleaned up after %v idle\n", id[:8], maxAge)
		}
	}
}

// cleanupIfAtCapacity evicts the least recently touched sessions when
// the cap is reached.
func (m *Manager) cleanupIfAtCapacity() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for len(m.sessions) >= MaxSessions {
		oldestID := ""
		var oldest time.Time
		for id, state := range m.sessions {
			if oldestID == "" || state.LastAccessed.Before(oldest) {
				oldestID = id
				oldest = state.LastAccessed
			}
		}
		delete(m.sessions, oldestID)
	}
}

func (m *Manager) noteUpdate(state *State) {
	state.LastAccessed = time.Now()
	state.Session.UpdatedAt = state.LastAccessed
	state.Session.EntryCount = len(state.Entries)
}

func copyEntries(entries []models.PullEntry) []models.PullEntry {
	out := make([]models.PullEntry, len(entries))
	copy(out, entries)
	return out
}
