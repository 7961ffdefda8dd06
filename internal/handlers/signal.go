package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Relayer forwards opaque signaling payloads to a connected peer.
type Relayer interface {
	Relay(fromID, toID, roomName string, payload json.RawMessage) error
}

// SignalHandler exposes the HTTP signaling-relay boundary. Payload contents
// are opaque; only addressing is validated.
type SignalHandler struct {
	relayer Relayer
}

// NewSignalHandler constructs a SignalHandler.
func NewSignalHandler(relayer Relayer) *SignalHandler {
	return &SignalHandler{relayer: relayer}
}

type signalRelayRequest struct {
	RoomName string          `json:"roomName" binding:"required"`
	Signal   json.RawMessage `json:"signal" binding:"required"`
	FromUser string          `json:"fromUser" binding:"required"`
	ToUser   string          `json:"toUser"`
}

// RelaySignal delivers a call-setup payload to the addressed peer. An
// unreachable recipient is a delivery failure for the caller, never a
// session-ending event; the media layer retries on its own.
func (h *SignalHandler) RelaySignal(c *gin.Context) {
	var req signalRelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signal payload"})
		return
	}

	if err := h.relayer.Relay(req.FromUser, req.ToUser, req.RoomName, req.Signal); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found or disconnected"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
