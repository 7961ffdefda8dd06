package models

// User is the placeholder shape for a persistent account. Account storage,
// billing and premium tiers live outside this service; matchmaking identity
// is the ephemeral connection id, never a user id.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
