package repositories

import (
	"strings"
	"testing"
)

func TestArchiveInsertConflictsOnRoomName(t *testing.T) {
	if !strings.Contains(archiveInsertQuery, "ON CONFLICT (room_name) DO NOTHING") {
		t.Fatalf("archive insert must resolve conflicts on the room name, got:\n%s", archiveInsertQuery)
	}
	if strings.Contains(archiveInsertQuery, "ON CONFLICT (match_id)") {
		t.Fatalf("archive insert must not key idempotence on the in-memory match id:\n%s", archiveInsertQuery)
	}
}
