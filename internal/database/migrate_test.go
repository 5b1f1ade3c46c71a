package database_test

import (
	"testing"

	"github.com/JashanveerS/TastyTray/internal/database"
)

func TestMigrate_CreatesTables(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	tables := []string{"users", "favorites", "pantry_items", "shopping_list", "meal_plans", "share_tokens"}
	for _, table := range tables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("expected table %s to exist: %v", table, err)
		}
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		t.Fatalf("first migration run: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("second migration run: %v", err)
	}
}

func TestMigrate_MealPlanSlotUnique(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	_, err = db.Exec(
		`INSERT INTO users (id, email, created_at, updated_at) VALUES ('u1', 'a@b.com', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
	)
	if err != nil {
		t.Fatalf("inserting user: %v", err)
	}

	insert := `INSERT INTO meal_plans (id, user_id, date, meal_type, recipe_id, recipe_title, servings, created_at)
	VALUES (?, 'u1', '2024-01-01', 'dinner', ?, 'x', 2, CURRENT_TIMESTAMP)`
	if _, err := db.Exec(insert, "m1", "r1"); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := db.Exec(insert, "m2", "r2"); err == nil {
		t.Fatal("expected unique constraint violation for duplicate slot")
	}
}
