package models

import "time"

// Match is a paired call session between exactly two connections. Matches are
// never deleted, only marked ended, so teardown stays idempotent and ended
// sessions remain available for audit.
type Match struct {
	ID        int        `db:"id" json:"id"`
	User1ID   string     `db:"user1_id" json:"user1_id"`
	User2ID   string     `db:"user2_id" json:"user2_id"`
	RoomName  string     `db:"room_name" json:"room_name"`
	Mood      Mood       `db:"mood" json:"mood"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	EndedAt   *time.Time `db:"ended_at" json:"ended_at,omitempty"`
}

// OtherParticipant returns the peer of the given connection within the match.
func (m Match) OtherParticipant(connectionID string) string {
	if m.User1ID == connectionID {
		return m.User2ID
	}
	return m.User1ID
}

// HasParticipant reports whether the connection is one of the two participants.
func (m Match) HasParticipant(connectionID string) bool {
	return m.User1ID == connectionID || m.User2ID == connectionID
}

// Ended reports whether the match has been torn down.
func (m Match) Ended() bool {
	return m.EndedAt != nil
}
