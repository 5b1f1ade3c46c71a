package repository

import (
	"context"
	"testing"

	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/JashanveerS/TastyTray/internal/testutil"
)

func TestShoppingListLifecycle(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userID := testutil.CreateTestUser(t, db)
	repo := NewShoppingListRepository(db)
	ctx := context.Background()

	quantity := 1.5
	unit := "cups"
	flour, err := repo.Create(ctx, models.ShoppingListItem{
		UserID:         userID,
		IngredientName: "Flour",
		Quantity:       &quantity,
		Unit:           &unit,
	})
	if err != nil {
		t.Fatalf("creating flour: %v", err)
	}
	eggs, err := repo.Create(ctx, models.ShoppingListItem{UserID: userID, IngredientName: "Eggs"})
	if err != nil {
		t.Fatalf("creating eggs: %v", err)
	}

	if err := repo.SetCompleted(ctx, userID, flour.ID, true); err != nil {
		t.Fatalf("SetCompleted: %v", err)
	}

	items, err := repo.FindAll(ctx, userID)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	// Open items sort before completed ones.
	if items[0].ID != eggs.ID || items[0].IsCompleted {
		t.Errorf("expected eggs first and open, got %+v", items[0])
	}
	if items[1].ID != flour.ID || !items[1].IsCompleted {
		t.Errorf("expected flour last and completed, got %+v", items[1])
	}

	if err := repo.DeleteCompleted(ctx, userID); err != nil {
		t.Fatalf("DeleteCompleted: %v", err)
	}
	items, err = repo.FindAll(ctx, userID)
	if err != nil {
		t.Fatalf("FindAll after clear: %v", err)
	}
	if len(items) != 1 || items[0].ID != eggs.ID {
		t.Errorf("clearing completed should leave only eggs, got %v", items)
	}

	if err := repo.Delete(ctx, userID, eggs.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	items, err = repo.FindAll(ctx, userID)
	if err != nil {
		t.Fatalf("FindAll after delete: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty list, got %v", items)
	}
}
