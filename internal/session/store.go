package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("session not found")

// Store is an in-memory session store. Sessions live for the process
// lifetime only; restarting the server discards them.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]Session)}
}

// Create registers a new session for an uploaded file and returns it.
func (st *Store) Create(filename, pdfPath string, sizeBytes int64, pdfPages int) Session {
	now := time.Now().UTC()
	s := Session{
		ID:        uuid.New().String(),
		Filename:  filename,
		PDFPath:   pdfPath,
		SizeBytes: sizeBytes,
		PDFPages:  pdfPages,
		CreatedAt: now,
		UpdatedAt: now,
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	return s
}

// Get returns a session by ID.
func (st *Store) Get(id string) (Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

// Update replaces a stored session. The session must already exist.
func (st *Store) Update(s Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[s.ID]; !ok {
		return ErrNotFound
	}
	st.sessions[s.ID] = s
	return nil
}

// Delete removes a session. Removing a missing session is not an error.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// List returns summaries of all sessions, newest first.
func (st *Store) List() []Summary {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]Summary, 0, len(st.sessions))
	for _, s := range st.sessions {
		out = append(out, s.Summarize())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Count returns the number of live sessions.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
