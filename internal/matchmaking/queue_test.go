package matchmaking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RajanRajbhar12/Whisperconnect/internal/models"
)

func TestEnqueueRejectsUnknownMood(t *testing.T) {
	q := NewMoodQueue()

	_, err := q.Enqueue("a", models.Mood("bored"))

	assert.ErrorIs(t, err, models.ErrInvalidMood)
	assert.Equal(t, 0, q.Len())
}

func TestEnqueueReplacesExistingEntry(t *testing.T) {
	q := NewMoodQueue()

	first, err := q.Enqueue("a", models.MoodHappy)
	require.NoError(t, err)
	second, err := q.Enqueue("a", models.MoodSad)
	require.NoError(t, err)

	assert.Equal(t, 1, q.Len())
	assert.Greater(t, second.ID, first.ID, "replacement moves the entry to the back")

	entry, ok := q.Get("a")
	require.True(t, ok)
	assert.Equal(t, models.MoodSad, entry.Mood)
	assert.False(t, entry.IsMatched)
}

func TestCandidatesForOrderAndExclusions(t *testing.T) {
	q := NewMoodQueue()

	for i := 0; i < 4; i++ {
		_, err := q.Enqueue(fmt.Sprintf("c%d", i), models.MoodAnxious)
		require.NoError(t, err)
	}
	_, err := q.Enqueue("other", models.MoodTired)
	require.NoError(t, err)
	require.True(t, q.Reserve("c1", "c2", models.MoodAnxious))

	candidates := q.CandidatesFor(models.MoodAnxious, "c3")

	require.Len(t, candidates, 1, "matched, other-mood and self entries are excluded")
	assert.Equal(t, "c0", candidates[0].ConnectionID)
}

func TestCandidatesForFIFOOrder(t *testing.T) {
	q := NewMoodQueue()
	for _, id := range []string{"first", "second", "third"} {
		_, err := q.Enqueue(id, models.MoodLonely)
		require.NoError(t, err)
	}

	candidates := q.CandidatesFor(models.MoodLonely, "")

	require.Len(t, candidates, 3)
	assert.Equal(t, "first", candidates[0].ConnectionID)
	assert.Equal(t, "second", candidates[1].ConnectionID)
	assert.Equal(t, "third", candidates[2].ConnectionID)
}

func TestReserveIsAllOrNothing(t *testing.T) {
	q := NewMoodQueue()
	_, _ = q.Enqueue("a", models.MoodHappy)
	_, _ = q.Enqueue("b", models.MoodHappy)
	_, _ = q.Enqueue("c", models.MoodHappy)

	require.True(t, q.Reserve("a", "b", models.MoodHappy))

	assert.False(t, q.Reserve("c", "b", models.MoodHappy), "b is already reserved")
	entry, _ := q.Get("c")
	assert.False(t, entry.IsMatched, "failed reservation must not touch the requester")

	assert.False(t, q.Reserve("c", "missing", models.MoodHappy))
	entry, _ = q.Get("c")
	assert.False(t, entry.IsMatched)
}

func TestReserveRejectsSupersededMood(t *testing.T) {
	q := NewMoodQueue()
	_, _ = q.Enqueue("a", models.MoodHappy)
	_, _ = q.Enqueue("b", models.MoodHappy)

	// b re-joins under another mood between the candidate scan and the
	// reservation; the stale reservation must lose.
	_, _ = q.Enqueue("b", models.MoodSad)

	assert.False(t, q.Reserve("a", "b", models.MoodHappy))
	for _, id := range []string{"a", "b"} {
		entry, ok := q.Get(id)
		require.True(t, ok)
		assert.False(t, entry.IsMatched)
	}
}

func TestRequeueSurvivesRemovedEntry(t *testing.T) {
	q := NewMoodQueue()

	first, _ := q.Enqueue("a", models.MoodLonely)
	_, _ = q.Enqueue("b", models.MoodLonely)
	require.True(t, q.Reserve("a", "b", models.MoodLonely))

	kept := q.Requeue("a", models.MoodLonely)
	assert.Equal(t, first.ID, kept.ID, "an existing entry keeps its queue position")
	assert.False(t, kept.IsMatched)

	q.Remove("b")
	recreated := q.Requeue("b", models.MoodLonely)
	assert.Greater(t, recreated.ID, first.ID)
	entry, ok := q.Get("b")
	require.True(t, ok, "a removed entry is recreated")
	assert.False(t, entry.IsMatched)
	assert.Equal(t, models.MoodLonely, entry.Mood)
}

func TestReleaseReturnsEntriesToWaiting(t *testing.T) {
	q := NewMoodQueue()
	_, _ = q.Enqueue("a", models.MoodSad)
	_, _ = q.Enqueue("b", models.MoodSad)
	require.True(t, q.Reserve("a", "b", models.MoodSad))

	q.Release("a", "b", "missing")

	for _, id := range []string{"a", "b"} {
		entry, ok := q.Get(id)
		require.True(t, ok)
		assert.False(t, entry.IsMatched)
	}
	assert.Equal(t, 2, q.Depth(models.MoodSad))
}

func TestDepthCountsOnlyWaiting(t *testing.T) {
	q := NewMoodQueue()
	_, _ = q.Enqueue("a", models.MoodTired)
	_, _ = q.Enqueue("b", models.MoodTired)
	_, _ = q.Enqueue("c", models.MoodHappy)

	assert.Equal(t, 2, q.Depth(models.MoodTired))

	require.True(t, q.Reserve("a", "b", models.MoodTired))
	assert.Equal(t, 0, q.Depth(models.MoodTired))
	assert.Equal(t, 1, q.Depth(models.MoodHappy))
	assert.Equal(t, 3, q.Len())
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	q := NewMoodQueue()
	_, _ = q.Enqueue("a", models.MoodHappy)

	q.Remove("missing")
	q.Remove("a")
	q.Remove("a")

	assert.Equal(t, 0, q.Len())
}
