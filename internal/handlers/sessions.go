package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RajanRajbhar12/Whisperconnect/internal/repositories"
)

// SessionsHandler serves the ended-session audit archive.
type SessionsHandler struct {
	archive repositories.SessionArchive
}

// NewSessionsHandler constructs a SessionsHandler.
func NewSessionsHandler(archive repositories.SessionArchive) *SessionsHandler {
	return &SessionsHandler{archive: archive}
}

// ListRecent returns the most recently ended sessions.
func (h *SessionsHandler) ListRecent(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session archive not configured"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	sessions, err := h.archive.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
