package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/RajanRajbhar12/Whisperconnect/internal/models"
)

type RelayerMock struct {
	mock.Mock
}

func (m *RelayerMock) Relay(fromID, toID, roomName string, payload json.RawMessage) error {
	args := m.Called(fromID, toID, roomName, payload)
	return args.Error(0)
}

type SessionArchiveMock struct {
	mock.Mock
}

func (m *SessionArchiveMock) ArchiveSession(ctx context.Context, match models.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *SessionArchiveMock) ListRecent(ctx context.Context, limit int) ([]models.Match, error) {
	args := m.Called(ctx, limit)
	var list []models.Match
	if val := args.Get(0); val != nil {
		list = val.([]models.Match)
	}
	return list, args.Error(1)
}
