package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RajanRajbhar12/Whisperconnect/internal/mocks"
	"github.com/RajanRajbhar12/Whisperconnect/internal/models"
	"github.com/RajanRajbhar12/Whisperconnect/internal/repositories"
)

func setupSessionsRouter(archive repositories.SessionArchive) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/sessions/recent", NewSessionsHandler(archive).ListRecent)
	return r
}

func TestListRecentSessions(t *testing.T) {
	archive := new(mocks.SessionArchiveMock)
	router := setupSessionsRouter(archive)

	endedAt := time.Now()
	archive.On("ListRecent", mock.Anything, 5).Return([]models.Match{
		{ID: 1, User1ID: "a", User2ID: "b", RoomName: "room_x", Mood: models.MoodHappy, EndedAt: &endedAt},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/sessions/recent?limit=5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Sessions []models.Match `json:"sessions"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, "room_x", resp.Sessions[0].RoomName)
	archive.AssertExpectations(t)
}

func TestListRecentSessionsInvalidLimit(t *testing.T) {
	archive := new(mocks.SessionArchiveMock)
	router := setupSessionsRouter(archive)

	req := httptest.NewRequest(http.MethodGet, "/sessions/recent?limit=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	archive.AssertNotCalled(t, "ListRecent")
}

func TestListRecentSessionsRepoError(t *testing.T) {
	archive := new(mocks.SessionArchiveMock)
	router := setupSessionsRouter(archive)

	archive.On("ListRecent", mock.Anything, 20).Return(([]models.Match)(nil), assert.AnError).Once()

	req := httptest.NewRequest(http.MethodGet, "/sessions/recent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	archive.AssertExpectations(t)
}

func TestListRecentSessionsArchiveDisabled(t *testing.T) {
	router := setupSessionsRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/sessions/recent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
