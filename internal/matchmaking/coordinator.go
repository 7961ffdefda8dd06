package matchmaking

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/RajanRajbhar12/Whisperconnect/internal/models"
	"github.com/RajanRajbhar12/Whisperconnect/internal/observability"
)

// ErrNoRecipient is returned by Relay when no destination was given.
var ErrNoRecipient = errors.New("no recipient connection id")

// Leave cancels pending matchmaking and tears down any active session. Calling
// it on an idle connection is a no-op and produces no notification.
func (m *Matchmaker) Leave(connectionID string) {
	m.cancelPending(connectionID)

	if match, ok := m.store.FindActiveByParticipant(connectionID); ok {
		m.endSession(match, connectionID, true)
		return
	}

	if entry, ok := m.queue.Get(connectionID); ok {
		m.queue.Remove(connectionID)
		observability.SetQueueDepth(string(entry.Mood), m.queue.Depth(entry.Mood))
		log.Printf("conn %s left queue mood=%s", connectionID, entry.Mood)
	}
}

// Disconnect is the teardown path for a dropped connection. The surviving peer
// observes exactly what an explicit leave would have produced.
func (m *Matchmaker) Disconnect(connectionID string) {
	m.Leave(connectionID)
}

// Relay delivers an opaque signaling payload to the destination connection,
// tagged with the sender and the session's room name. Delivery failure is
// surfaced to the caller and does not end the session; the media layer retries
// on its own.
func (m *Matchmaker) Relay(fromID, toID, roomName string, payload json.RawMessage) error {
	if toID == "" {
		return ErrNoRecipient
	}
	if roomName == "" {
		if match, ok := m.store.FindActiveByParticipant(fromID); ok {
			roomName = match.RoomName
		}
	}
	return m.notifier.Send(toID, models.SignalEvent(payload, fromID, roomName))
}

// endSession marks the match ended exactly once, returns both participants to
// idle and notifies the surviving peer. The initiator receives nothing.
func (m *Matchmaker) endSession(match models.Match, leaverID string, notifyPeer bool) {
	ended, changed := m.store.End(match.ID)
	if !changed {
		// Already torn down by the other side.
		return
	}

	if !m.store.Confirmed(match.ID) {
		// The matched events are still in flight; the pairing flow owns the
		// rollback and the peer never learned about this session. Only the
		// leaver's own entry goes.
		m.queue.Remove(leaverID)
		observability.SetQueueDepth(string(match.Mood), m.queue.Depth(match.Mood))
		return
	}

	peerID := match.OtherParticipant(leaverID)
	m.queue.Remove(leaverID)
	m.queue.Remove(peerID)
	observability.SetQueueDepth(string(match.Mood), m.queue.Depth(match.Mood))

	if notifyPeer {
		if err := m.notifier.Send(peerID, models.CallEndedEvent()); err != nil {
			log.Printf("callEnded not delivered to %s: %v", peerID, err)
		}
	}

	observability.ObserveSessionDuration(ended.EndedAt.Sub(ended.CreatedAt).Seconds())
	m.emitMatchEvent("session_ended", ended)
	m.archive(ended)
	log.Printf("session %d ended between %s and %s", ended.ID, ended.User1ID, ended.User2ID)
}

func (m *Matchmaker) emitMatchEvent(name string, match models.Match) {
	envelope := observability.NewEnvelope("match_events", name, match)
	_ = observability.PublishEvent(context.Background(), "match_events.sessions", envelope, nil)
}

func (m *Matchmaker) archive(match models.Match) {
	if m.archiver == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.archiver.ArchiveSession(ctx, match); err != nil {
			log.Printf("session archive failed id=%d: %v", match.ID, err)
		}
	}()
}
