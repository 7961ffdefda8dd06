package matchmaking

import (
	"sort"
	"sync"
	"time"

	"github.com/RajanRajbhar12/Whisperconnect/internal/models"
)

// MoodQueue holds active-but-unmatched users indexed by mood. All mutation goes
// through the queue's own lock; entries are handed out only as copies so a
// candidate scan never observes a half-updated queue.
type MoodQueue struct {
	mu      sync.Mutex
	entries map[string]*models.ActiveUser
	nextID  int
}

// NewMoodQueue creates an empty queue.
func NewMoodQueue() *MoodQueue {
	return &MoodQueue{entries: make(map[string]*models.ActiveUser), nextID: 1}
}

// Enqueue adds an entry for the connection. An existing entry is replaced, not
// duplicated: a re-join supersedes the previous declared mood and moves the
// connection to the back of the FIFO order.
func (q *MoodQueue) Enqueue(connectionID string, mood models.Mood) (models.ActiveUser, error) {
	if _, err := models.ParseMood(string(mood)); err != nil {
		return models.ActiveUser{}, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	entry := &models.ActiveUser{
		ID:           q.nextID,
		ConnectionID: connectionID,
		Mood:         mood,
		CreatedAt:    time.Now(),
	}
	q.nextID++
	q.entries[connectionID] = entry
	return *entry, nil
}

// Get returns a copy of the connection's entry.
func (q *MoodQueue) Get(connectionID string) (models.ActiveUser, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if entry, ok := q.entries[connectionID]; ok {
		return *entry, true
	}
	return models.ActiveUser{}, false
}

// CandidatesFor returns a snapshot of unmatched entries for the mood, excluding
// the requester, ordered earliest-enqueued-first.
func (q *MoodQueue) CandidatesFor(mood models.Mood, excludeConnectionID string) []models.ActiveUser {
	q.mu.Lock()
	defer q.mu.Unlock()

	var out []models.ActiveUser
	for _, entry := range q.entries {
		if entry.Mood != mood || entry.IsMatched || entry.ConnectionID == excludeConnectionID {
			continue
		}
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Reserve atomically flips both entries to matched. It fails without side
// effects unless both connections are still queued, unmatched and declaring
// the given mood; this is the step that guarantees exactly one winner for any
// pairing race. The mood check closes the window where a candidate re-joined
// under a different mood after being scanned.
func (q *MoodQueue) Reserve(connectionID, partnerID string, mood models.Mood) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	a, okA := q.entries[connectionID]
	b, okB := q.entries[partnerID]
	if !okA || !okB || a.IsMatched || b.IsMatched || a.Mood != mood || b.Mood != mood {
		return false
	}
	a.IsMatched = true
	b.IsMatched = true
	return true
}

// Requeue returns the connection to the waiting pool, recreating the entry
// when a concurrent teardown already removed it. An existing entry keeps its
// queue position.
func (q *MoodQueue) Requeue(connectionID string, mood models.Mood) models.ActiveUser {
	q.mu.Lock()
	defer q.mu.Unlock()

	if entry, ok := q.entries[connectionID]; ok {
		entry.IsMatched = false
		return *entry
	}
	entry := &models.ActiveUser{
		ID:           q.nextID,
		ConnectionID: connectionID,
		Mood:         mood,
		CreatedAt:    time.Now(),
	}
	q.nextID++
	q.entries[connectionID] = entry
	return *entry
}

// Release clears the matched flag for the given connections, returning their
// entries to the waiting pool.
func (q *MoodQueue) Release(connectionIDs ...string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, id := range connectionIDs {
		if entry, ok := q.entries[id]; ok {
			entry.IsMatched = false
		}
	}
}

// Remove deletes the connection's entry if present.
func (q *MoodQueue) Remove(connectionID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.entries, connectionID)
}

// Depth counts waiting (unmatched) entries for a mood.
func (q *MoodQueue) Depth(mood models.Mood) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for _, entry := range q.entries {
		if entry.Mood == mood && !entry.IsMatched {
			n++
		}
	}
	return n
}

// Len returns the total number of entries, matched or not.
func (q *MoodQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
