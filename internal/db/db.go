package db

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect initializes the database connection and runs migrations. The
// database only holds the session audit archive; live queue and match state is
// memory-resident by design.
func Connect(dsn string) (*sqlx.DB, error) {
	database, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := runMigrations(database); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return database, nil
}

// The archive key is the uuid-derived room name. In-memory match ids restart
// at 1 on every boot, so they cannot identify a session across process
// lifetimes; keying on them would make every post-restart insert collide with
// a row from the previous run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS session_archive (
            room_name TEXT PRIMARY KEY,
            match_id INT NOT NULL,
            user1_id TEXT NOT NULL,
            user2_id TEXT NOT NULL,
            mood TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL,
            ended_at TIMESTAMPTZ NOT NULL
        );`,
	`CREATE INDEX IF NOT EXISTS session_archive_ended_at_idx ON session_archive (ended_at DESC);`,
}

func runMigrations(database *sqlx.DB) error {
	for _, m := range migrations {
		if _, err := database.Exec(m); err != nil {
			return err
		}
	}
	log.Println("database migrations applied")
	return nil
}
