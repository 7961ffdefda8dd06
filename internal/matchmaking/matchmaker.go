package matchmaking

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RajanRajbhar12/Whisperconnect/internal/models"
	"github.com/RajanRajbhar12/Whisperconnect/internal/observability"
)

// DefaultSettleDelay is how long a freshly queued user waits before scanning
// for a partner. Two near-simultaneous joins both land in the queue before
// either searches it, which shrinks the double-search window. Correctness does
// not depend on it; the reservation step in MoodQueue.Reserve does.
const DefaultSettleDelay = 300 * time.Millisecond

// Notifier pushes events to live connections. Send reports failure when the
// destination is gone, which is how the matchmaker detects a stale peer.
type Notifier interface {
	Send(connectionID string, event models.ServerEvent) error
}

// Archiver records ended sessions outside the in-memory store.
type Archiver interface {
	ArchiveSession(ctx context.Context, match models.Match) error
}

// Matchmaker owns the join pipeline and the full session lifecycle: enqueue,
// delayed pairing, matched/waiting notification, signaling relay and teardown.
type Matchmaker struct {
	queue    *MoodQueue
	store    *MatchStore
	notifier Notifier
	archiver Archiver

	settleDelay time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewMatchmaker constructs a Matchmaker. A zero settleDelay makes pairing run
// inline on join, which the tests rely on.
func NewMatchmaker(queue *MoodQueue, store *MatchStore, notifier Notifier, settleDelay time.Duration) *Matchmaker {
	return &Matchmaker{
		queue:       queue,
		store:       store,
		notifier:    notifier,
		settleDelay: settleDelay,
		timers:      make(map[string]*time.Timer),
	}
}

// SetArchiver wires an optional session archive.
func (m *Matchmaker) SetArchiver(a Archiver) {
	m.archiver = a
}

// Join handles a join-with-mood request. Errors are reported to the requesting
// connection only and never leak into other users' state.
func (m *Matchmaker) Join(connectionID, moodStr string) {
	mood, err := models.ParseMood(moodStr)
	if err != nil {
		_ = m.notifier.Send(connectionID, models.ErrorEvent("Invalid mood"))
		return
	}

	// A new join is an implicit leave of any prior session, so a user who
	// re-selects a mood mid-call never leaves an orphaned session behind.
	if match, ok := m.store.FindActiveByParticipant(connectionID); ok {
		m.endSession(match, connectionID, true)
	}

	if _, err := m.queue.Enqueue(connectionID, mood); err != nil {
		_ = m.notifier.Send(connectionID, models.ErrorEvent("Invalid mood"))
		return
	}
	observability.SetQueueDepth(string(mood), m.queue.Depth(mood))
	log.Printf("conn %s joined queue mood=%s", connectionID, mood)

	m.scheduleMatch(connectionID, mood)
}

// scheduleMatch arms the settling timer for the connection. A newer join
// replaces the pending timer so the matcher never acts on stale intent.
func (m *Matchmaker) scheduleMatch(connectionID string, mood models.Mood) {
	m.mu.Lock()
	if t, ok := m.timers[connectionID]; ok {
		t.Stop()
		delete(m.timers, connectionID)
	}
	if m.settleDelay <= 0 {
		m.mu.Unlock()
		m.tryMatch(connectionID, mood)
		return
	}
	m.timers[connectionID] = time.AfterFunc(m.settleDelay, func() {
		m.mu.Lock()
		delete(m.timers, connectionID)
		m.mu.Unlock()
		m.tryMatch(connectionID, mood)
	})
	m.mu.Unlock()
}

func (m *Matchmaker) cancelPending(connectionID string) {
	m.mu.Lock()
	if t, ok := m.timers[connectionID]; ok {
		t.Stop()
		delete(m.timers, connectionID)
	}
	m.mu.Unlock()
}

func (m *Matchmaker) tryMatch(connectionID string, mood models.Mood) {
	entry, ok := m.queue.Get(connectionID)
	if !ok || entry.IsMatched || entry.Mood != mood {
		// Left, already matched by the other side, or superseded by a newer join.
		return
	}

	candidates := m.queue.CandidatesFor(mood, connectionID)
	if len(candidates) == 0 {
		_ = m.notifier.Send(connectionID, models.WaitingEvent(mood))
		return
	}

	partner := candidates[0]
	if !m.queue.Reserve(connectionID, partner.ConnectionID, mood) {
		// Lost the race for the chosen candidate. Wait for the next joiner
		// instead of rescanning, which keeps concurrent joins from storming.
		_ = m.notifier.Send(connectionID, models.WaitingEvent(mood))
		return
	}

	roomName := newRoomName()
	match, err := m.store.Create(connectionID, partner.ConnectionID, roomName, mood)
	if err != nil {
		// Unreachable while the reservation discipline holds.
		log.Printf("ERROR: session create failed for %s and %s: %v", connectionID, partner.ConnectionID, err)
		m.queue.Release(connectionID, partner.ConnectionID)
		_ = m.notifier.Send(connectionID, models.ErrorEvent("Error finding match"))
		return
	}

	// Partner first: if their connection died between selection and delivery
	// the attempt is rolled back and the requester goes back to waiting.
	// Neither side is ever left matched alone.
	if err := m.notifier.Send(partner.ConnectionID, models.MatchedEvent(roomName, mood, connectionID)); err != nil {
		// The partner's disconnect teardown may be running right now and may
		// have already ended the session and dropped the requester's queue
		// entry. Requeue rather than release, so the requester is never told
		// it waits with no entry behind it.
		m.store.End(match.ID)
		m.queue.Remove(partner.ConnectionID)
		m.queue.Requeue(connectionID, mood)
		observability.SetQueueDepth(string(mood), m.queue.Depth(mood))
		_ = m.notifier.Send(connectionID, models.WaitingEvent(mood))
		log.Printf("partner %s unreachable, conn %s back to waiting", partner.ConnectionID, connectionID)
		return
	}
	if err := m.notifier.Send(connectionID, models.MatchedEvent(roomName, mood, partner.ConnectionID)); err != nil {
		// The requester vanished after the partner was told. Notify the
		// partner no matter which side's cleanup ended the session first.
		ended, changed := m.store.End(match.ID)
		m.queue.Remove(connectionID)
		m.queue.Remove(partner.ConnectionID)
		observability.SetQueueDepth(string(mood), m.queue.Depth(mood))
		_ = m.notifier.Send(partner.ConnectionID, models.CallEndedEvent())
		if changed {
			m.emitMatchEvent("session_ended", ended)
			m.archive(ended)
		}
		return
	}

	if !m.store.Confirm(match.ID) {
		// A teardown ran while the matched events were in flight. Finish it
		// here so neither side stays in a ghost call; a dead side just fails
		// the send.
		ended, _ := m.store.Get(match.ID)
		m.queue.Remove(connectionID)
		m.queue.Remove(partner.ConnectionID)
		observability.SetQueueDepth(string(mood), m.queue.Depth(mood))
		_ = m.notifier.Send(connectionID, models.CallEndedEvent())
		_ = m.notifier.Send(partner.ConnectionID, models.CallEndedEvent())
		m.emitMatchEvent("session_ended", ended)
		m.archive(ended)
		return
	}

	observability.IncMatchCreated(string(mood))
	observability.SetQueueDepth(string(mood), m.queue.Depth(mood))
	m.emitMatchEvent("match_created", match)
	log.Printf("matched %s and %s in %s mood=%s", connectionID, partner.ConnectionID, roomName, mood)
}

func newRoomName() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "room_" + id[:10]
}
