package db

import (
	"strings"
	"testing"
)

// Match ids restart at 1 whenever the process restarts. An archive keyed on
// them would make every post-restart session collide with a row from the
// previous run and be dropped silently by the conflict clause.
func TestArchiveSchemaKeyedByRoomName(t *testing.T) {
	var schema string
	for _, m := range migrations {
		if strings.Contains(m, "CREATE TABLE") && strings.Contains(m, "session_archive") {
			schema = m
		}
	}
	if schema == "" {
		t.Fatal("session_archive schema not found in migrations")
	}

	if !strings.Contains(schema, "room_name TEXT PRIMARY KEY") {
		t.Fatalf("session_archive must be keyed by room_name, got:\n%s", schema)
	}
	if strings.Contains(schema, "match_id INT PRIMARY KEY") {
		t.Fatalf("session_archive must not be keyed by the in-memory match id:\n%s", schema)
	}
}
