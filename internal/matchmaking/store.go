package matchmaking

import (
	"errors"
	"sync"
	"time"

	"github.com/RajanRajbhar12/Whisperconnect/internal/models"
)

// ErrDuplicateParticipant means a participant of a new session already has an
// un-ended one. The matchmaker's reservation step makes this unreachable; if it
// fires anyway the prior session is left intact.
var ErrDuplicateParticipant = errors.New("participant already has an active session")

// MatchStore holds created sessions keyed by id. Sessions are never deleted,
// only marked ended, which keeps teardown idempotent and preserves an audit trail.
type MatchStore struct {
	mu        sync.Mutex
	nextID    int
	matches   map[int]*models.Match
	confirmed map[int]bool
}

// NewMatchStore creates an empty store.
func NewMatchStore() *MatchStore {
	return &MatchStore{
		nextID:    1,
		matches:   make(map[int]*models.Match),
		confirmed: make(map[int]bool),
	}
}

// Create records a new session between two participants.
func (s *MatchStore) Create(user1ID, user2ID, roomName string, mood models.Mood) (models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeFor(user1ID) != nil || s.activeFor(user2ID) != nil {
		return models.Match{}, ErrDuplicateParticipant
	}

	match := &models.Match{
		ID:        s.nextID,
		User1ID:   user1ID,
		User2ID:   user2ID,
		RoomName:  roomName,
		Mood:      mood,
		CreatedAt: time.Now(),
	}
	s.nextID++
	s.matches[match.ID] = match
	return *match, nil
}

// FindActiveByParticipant returns the un-ended session containing the
// connection, if any. At most one can exist.
func (s *MatchStore) FindActiveByParticipant(connectionID string) (models.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if match := s.activeFor(connectionID); match != nil {
		return *match, true
	}
	return models.Match{}, false
}

// Get returns a session by id, ended or not.
func (s *MatchStore) Get(id int) (models.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if match, ok := s.matches[id]; ok {
		return *match, true
	}
	return models.Match{}, false
}

// Confirm marks the session's matched notifications as fully delivered. It
// reports false when a concurrent teardown already ended the session, in
// which case the caller owns finishing that teardown.
func (s *MatchStore) Confirm(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, ok := s.matches[id]
	if !ok || match.EndedAt != nil {
		return false
	}
	s.confirmed[id] = true
	return true
}

// Confirmed reports whether both matched notifications were delivered.
func (s *MatchStore) Confirmed(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmed[id]
}

// End marks the session ended. Ending an unknown or already-ended session is a
// no-op; the bool reports whether this call performed the transition.
func (s *MatchStore) End(id int) (models.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, ok := s.matches[id]
	if !ok || match.EndedAt != nil {
		return models.Match{}, false
	}
	now := time.Now()
	match.EndedAt = &now
	return *match, true
}

// caller must hold s.mu
func (s *MatchStore) activeFor(connectionID string) *models.Match {
	for _, match := range s.matches {
		if match.EndedAt == nil && match.HasParticipant(connectionID) {
			return match
		}
	}
	return nil
}
