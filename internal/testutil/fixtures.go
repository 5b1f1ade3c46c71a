package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
)

// CreateTestUser inserts a minimal user row and returns its id. Raw SQL
// rather than the repository keeps this package import-cycle free.
func CreateTestUser(t *testing.T, db *sql.DB) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.Exec(
		`INSERT INTO users (id, email, full_name, avatar_url, preferences, allergies, favorite_cuisines, goals, created_at, updated_at)
		VALUES (?, ?, '', '', '[]', '[]', '[]', '{}', datetime('now'), datetime('now'))`,
		id, id+"@example.com",
	)
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return id
}
