package models

import "encoding/json"

// ClientMessage is a message received over the websocket connection.
type ClientMessage struct {
	Type   string          `json:"type"`
	Mood   string          `json:"mood,omitempty"`
	ToUser string          `json:"toUser,omitempty"`
	Signal json.RawMessage `json:"signal,omitempty"`
}

// ServerEvent is pushed to clients over the websocket connection.
type ServerEvent struct {
	Type         string          `json:"type"`
	ConnectionID string          `json:"connectionId,omitempty"`
	Mood         Mood            `json:"mood,omitempty"`
	RoomName     string          `json:"roomName,omitempty"`
	OtherUserID  string          `json:"otherUserId,omitempty"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	FromUser     string          `json:"fromUser,omitempty"`
	Message      string          `json:"message,omitempty"`
}

// ConnectionEvent announces the assigned connection id right after connect.
func ConnectionEvent(connectionID string) ServerEvent {
	return ServerEvent{Type: "connection", ConnectionID: connectionID}
}

// WaitingEvent tells a queued user no partner was available yet.
func WaitingEvent(mood Mood) ServerEvent {
	return ServerEvent{Type: "waiting", Mood: mood}
}

// MatchedEvent notifies a participant of a successful pairing.
func MatchedEvent(roomName string, mood Mood, otherUserID string) ServerEvent {
	return ServerEvent{Type: "matched", RoomName: roomName, Mood: mood, OtherUserID: otherUserID}
}

// CallEndedEvent notifies the surviving participant that the peer left.
func CallEndedEvent() ServerEvent {
	return ServerEvent{Type: "callEnded"}
}

// SignalEvent carries an opaque call-setup payload to a participant.
func SignalEvent(payload json.RawMessage, fromUser, roomName string) ServerEvent {
	return ServerEvent{Type: "signal", Payload: payload, FromUser: fromUser, RoomName: roomName}
}

// ErrorEvent reports a matchmaking error to the sender only.
func ErrorEvent(message string) ServerEvent {
	return ServerEvent{Type: "error", Message: message}
}
