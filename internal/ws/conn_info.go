package ws

import "time"

// ConnInfo carries per-connection metadata captured at handshake time,
// used for audit events and diagnostics.
type ConnInfo struct {
	ConnID      string
	IP          string
	DeviceID    string
	RequestID   string
	TraceID     string
	ConnectedAt time.Time
}
