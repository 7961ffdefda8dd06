package models

import (
	"errors"
	"fmt"
)

// Mood is the matching key a user declares when joining the queue.
// The set is closed; anything outside it is rejected before touching queue state.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodAnxious Mood = "anxious"
	MoodTired   Mood = "tired"
	MoodLonely  Mood = "lonely"
)

var ErrInvalidMood = errors.New("invalid mood")

var allMoods = []Mood{MoodHappy, MoodSad, MoodAnxious, MoodTired, MoodLonely}

// ParseMood validates a client-supplied mood string.
func ParseMood(s string) (Mood, error) {
	for _, m := range allMoods {
		if Mood(s) == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMood, s)
}

// Moods returns the fixed mood set in a stable order.
func Moods() []Mood {
	out := make([]Mood, len(allMoods))
	copy(out, allMoods)
	return out
}
