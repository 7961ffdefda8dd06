package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"github.com/RajanRajbhar12/Whisperconnect/internal/models"
	"github.com/RajanRajbhar12/Whisperconnect/internal/observability"
)

// Coordinator handles matchmaking commands arriving over a connection.
type Coordinator interface {
	Join(connectionID, mood string)
	Leave(connectionID string)
	Disconnect(connectionID string)
	Relay(fromID, toID, roomName string, payload json.RawMessage) error
}

// SessionWebSocketHandler owns the matchmaking websocket endpoint.
type SessionWebSocketHandler struct {
	hub         *Hub
	coordinator Coordinator
}

// NewSessionWebSocketHandler constructs a SessionWebSocketHandler.
func NewSessionWebSocketHandler(hub *Hub, coordinator Coordinator) *SessionWebSocketHandler {
	return &SessionWebSocketHandler{hub: hub, coordinator: coordinator}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the connection, assigns its id and starts the read loop.
func (h *SessionWebSocketHandler) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("whisperconnect/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	info := ConnInfo{
		IP:          observability.IPFromRequest(c.Request),
		DeviceID:    observability.DeviceIDFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		TraceID:     span.SpanContext().TraceID().String(),
		ConnectedAt: time.Now(),
	}
	id := h.hub.Register(conn, info)
	info.ConnID = id

	// The identity assignment must reach the client before anything else;
	// if even that write fails the connection is useless.
	if err := h.hub.Send(id, models.ConnectionEvent(id)); err != nil {
		conn.Close()
		return
	}

	observability.IncWSActive()
	observability.IncWSEvent("ws_connect")
	h.publishWSEvent(ctx, "ws_connect", info, "")

	go h.readLoop(ctx, conn, id, info)
}

func (h *SessionWebSocketHandler) readLoop(ctx context.Context, conn *websocket.Conn, id string, info ConnInfo) {
	var closeReason string
	defer func() {
		h.coordinator.Disconnect(id)
		h.hub.Unregister(id)
		observability.DecWSActive()
		observability.IncWSEvent("ws_disconnect")
		h.publishWSEvent(ctx, "ws_disconnect", info, closeReason)
		conn.Close()
	}()

	stopPing := make(chan struct{})
	defer close(stopPing)
	go h.pingLoop(id, stopPing)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			closeReason = err.Error()
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				observability.IncWSEvent("ws_error")
				h.publishWSEvent(ctx, "ws_error", info, closeReason)
			}
			return
		}

		var msg models.ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			_ = h.hub.Send(id, models.ErrorEvent("Invalid message format"))
			continue
		}

		switch msg.Type {
		case "join":
			h.coordinator.Join(id, msg.Mood)
		case "leave":
			h.coordinator.Leave(id)
		case "signal":
			if err := h.coordinator.Relay(id, msg.ToUser, "", msg.Signal); err != nil {
				_ = h.hub.Send(id, models.ErrorEvent("Recipient not found or disconnected"))
			}
		default:
			_ = h.hub.Send(id, models.ErrorEvent("Unknown message type"))
		}
	}
}

func (h *SessionWebSocketHandler) pingLoop(id string, stop <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := h.hub.Ping(id); err != nil {
				return
			}
		case <-stop:
			return
		}
	}
}

func (h *SessionWebSocketHandler) publishWSEvent(ctx context.Context, event string, info ConnInfo, reason string) {
	payload := map[string]any{
		"ws": map[string]any{
			"event":       event,
			"conn_id":     info.ConnID,
			"duration_ms": time.Since(info.ConnectedAt).Milliseconds(),
			"reason":      reason,
		},
		"identity": map[string]any{
			"device_id": info.DeviceID,
			"ip":        info.IP,
		},
	}

	headers := observability.BuildHeaders(info.RequestID, info.TraceID)
	envelope := observability.NewEnvelope("ws_events", event, payload)
	_ = observability.PublishEvent(ctx, "ws_events.sessions", envelope, headers)
}
