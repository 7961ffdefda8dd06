package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RajanRajbhar12/Whisperconnect/internal/mocks"
	"github.com/RajanRajbhar12/Whisperconnect/internal/telemetry"
)

func TestDebugAuditRouteEmits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	publisher := new(mocks.PublisherMock)
	emitter := telemetry.NewAuditEmitter(publisher, "audit_log.test", "whisperconnect", "test")

	publisher.On("Publish", mock.Anything, "audit_log.test", mock.MatchedBy(func(event any) bool {
		envelope, ok := event.(telemetry.AuditEnvelope)
		return ok && envelope.EventType == "audit_log" && envelope.Payload.Text == "audit test"
	})).Return(nil).Once()

	r := gin.New()
	RegisterDebugRoutes(r, emitter, true)

	req := httptest.NewRequest(http.MethodGet, "/debug/audit-test", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	publisher.AssertExpectations(t)
}

func TestDebugRoutesDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterDebugRoutes(r, nil, false)

	req := httptest.NewRequest(http.MethodGet, "/debug/audit-test", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
