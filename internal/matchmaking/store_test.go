package matchmaking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RajanRajbhar12/Whisperconnect/internal/models"
)

func TestStoreCreateAndFind(t *testing.T) {
	s := NewMatchStore()

	match, err := s.Create("a", "b", "room_ab", models.MoodHappy)
	require.NoError(t, err)
	assert.Equal(t, 1, match.ID)
	assert.Nil(t, match.EndedAt)

	for _, id := range []string{"a", "b"} {
		found, ok := s.FindActiveByParticipant(id)
		require.True(t, ok)
		assert.Equal(t, match.ID, found.ID)
	}
	_, ok := s.FindActiveByParticipant("c")
	assert.False(t, ok)
}

func TestStoreRejectsDuplicateParticipant(t *testing.T) {
	s := NewMatchStore()
	_, err := s.Create("a", "b", "room_ab", models.MoodSad)
	require.NoError(t, err)

	_, err = s.Create("a", "c", "room_ac", models.MoodSad)
	assert.ErrorIs(t, err, ErrDuplicateParticipant)

	_, err = s.Create("c", "b", "room_cb", models.MoodSad)
	assert.ErrorIs(t, err, ErrDuplicateParticipant)
}

func TestStoreEndIsIdempotent(t *testing.T) {
	s := NewMatchStore()
	match, err := s.Create("a", "b", "room_ab", models.MoodLonely)
	require.NoError(t, err)

	ended, changed := s.End(match.ID)
	require.True(t, changed)
	require.NotNil(t, ended.EndedAt)

	_, changed = s.End(match.ID)
	assert.False(t, changed, "second end must report no transition")

	_, changed = s.End(999)
	assert.False(t, changed)

	_, ok := s.FindActiveByParticipant("a")
	assert.False(t, ok)
}

func TestStoreConfirmTracksDelivery(t *testing.T) {
	s := NewMatchStore()
	match, err := s.Create("a", "b", "room_1", models.MoodHappy)
	require.NoError(t, err)

	assert.False(t, s.Confirmed(match.ID), "a fresh session is unconfirmed until both sides are notified")
	require.True(t, s.Confirm(match.ID))
	assert.True(t, s.Confirmed(match.ID))

	second, err := s.Create("c", "d", "room_2", models.MoodHappy)
	require.NoError(t, err)
	_, changed := s.End(second.ID)
	require.True(t, changed)
	assert.False(t, s.Confirm(second.ID), "an ended session can no longer be confirmed")

	assert.False(t, s.Confirm(999))
}

func TestStoreParticipantsCanRematchAfterEnd(t *testing.T) {
	s := NewMatchStore()
	first, err := s.Create("a", "b", "room_1", models.MoodAnxious)
	require.NoError(t, err)
	_, changed := s.End(first.ID)
	require.True(t, changed)

	second, err := s.Create("a", "b", "room_2", models.MoodAnxious)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	kept, ok := s.Get(first.ID)
	require.True(t, ok, "ended sessions stay retrievable")
	assert.True(t, kept.Ended())
}
