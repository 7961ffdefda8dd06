package models

import "time"

// ActiveUser is a connection that has declared a mood and is waiting to be paired.
// At most one entry exists per connection; a re-join replaces the previous entry.
type ActiveUser struct {
	ID           int       `json:"id"`
	ConnectionID string    `json:"connection_id"`
	Mood         Mood      `json:"mood"`
	IsMatched    bool      `json:"is_matched"`
	CreatedAt    time.Time `json:"created_at"`
}
