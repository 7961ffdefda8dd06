package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/RajanRajbhar12/Whisperconnect/internal/models"
)

// SessionArchive persists ended sessions for audit. The matchmaking hot path
// only ever writes to it, asynchronously.
type SessionArchive interface {
	ArchiveSession(ctx context.Context, match models.Match) error
	ListRecent(ctx context.Context, limit int) ([]models.Match, error)
}

// SessionArchiveRepo is a sqlx implementation of SessionArchive.
type SessionArchiveRepo struct {
	db *sqlx.DB
}

// NewSessionArchiveRepo constructs a SessionArchiveRepo.
func NewSessionArchiveRepo(db *sqlx.DB) *SessionArchiveRepo {
	return &SessionArchiveRepo{db: db}
}

// Conflicts target the room name: match ids are only unique within one
// process lifetime, room names are unique across restarts.
const archiveInsertQuery = `INSERT INTO session_archive (room_name, match_id, user1_id, user2_id, mood, created_at, ended_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (room_name) DO NOTHING`

// ArchiveSession inserts an ended session. Re-archiving the same session is a
// no-op so teardown retries stay idempotent.
func (r *SessionArchiveRepo) ArchiveSession(ctx context.Context, match models.Match) error {
	_, err := r.db.ExecContext(ctx, archiveInsertQuery,
		match.RoomName, match.ID, match.User1ID, match.User2ID, match.Mood, match.CreatedAt, match.EndedAt)
	return err
}

// ListRecent returns the most recently ended sessions.
func (r *SessionArchiveRepo) ListRecent(ctx context.Context, limit int) ([]models.Match, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := `SELECT match_id AS id, user1_id, user2_id, room_name, mood, created_at, ended_at
        FROM session_archive ORDER BY ended_at DESC LIMIT $1`
	var out []models.Match
	err := r.db.SelectContext(ctx, &out, query, limit)
	return out, err
}
