package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RajanRajbhar12/Whisperconnect/internal/media"
)

// MediaTokenHandler issues access tokens for the external media transport.
type MediaTokenHandler struct {
	builder *media.TokenBuilder
}

// NewMediaTokenHandler constructs a MediaTokenHandler.
func NewMediaTokenHandler(builder *media.TokenBuilder) *MediaTokenHandler {
	return &MediaTokenHandler{builder: builder}
}

type mediaTokenRequest struct {
	ChannelName string `json:"channelName" binding:"required"`
	UID         string `json:"uid" binding:"required"`
	Role        string `json:"role"`
}

// IssueToken signs a time-boxed token for the requested channel and uid.
func (h *MediaTokenHandler) IssueToken(c *gin.Context) {
	var req mediaTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token request"})
		return
	}

	token, err := h.builder.BuildToken(req.ChannelName, req.UID, req.Role)
	if err != nil {
		if errors.Is(err, media.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Media transport credentials not configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
