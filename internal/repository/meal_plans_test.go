package repository

import (
	"context"
	"testing"

	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/JashanveerS/TastyTray/internal/testutil"
)

func TestMealPlanUpsertReplacesSameSlot(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userID := testutil.CreateTestUser(t, db)
	repo := NewMealPlanRepository(db)
	ctx := context.Background()

	first, err := repo.Upsert(ctx, models.MealPlanItem{
		UserID: userID, Date: "2024-06-10", MealType: models.MealTypeDinner,
		RecipeID: "recipe-a", RecipeTitle: "Recipe A", Servings: 2,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := repo.Upsert(ctx, models.MealPlanItem{
		UserID: userID, Date: "2024-06-10", MealType: models.MealTypeDinner,
		RecipeID: "recipe-b", RecipeTitle: "Recipe B", Servings: 4,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert into the same slot should keep the row id, got %s then %s", first.ID, second.ID)
	}
	if second.RecipeID != "recipe-b" || second.Servings != 4 {
		t.Errorf("upsert did not replace the slot contents: %+v", second)
	}

	items, err := repo.FindAll(ctx, userID, MealPlanFilter{})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one row after replacement, got %d", len(items))
	}
}

func TestMealPlanFindAllOrdersByDateThenMealType(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userID := testutil.CreateTestUser(t, db)
	repo := NewMealPlanRepository(db)
	ctx := context.Background()

	slots := []struct {
		date     string
		mealType models.MealType
	}{
		{"2024-06-11", models.MealTypeBreakfast},
		{"2024-06-10", models.MealTypeSnack},
		{"2024-06-10", models.MealTypeBreakfast},
		{"2024-06-10", models.MealTypeDinner},
		{"2024-06-10", models.MealTypeLunch},
	}
	for _, slot := range slots {
		if _, err := repo.Upsert(ctx, models.MealPlanItem{
			UserID: userID, Date: slot.date, MealType: slot.mealType, RecipeID: "r", Servings: 1,
		}); err != nil {
			t.Fatalf("upserting %s %s: %v", slot.date, slot.mealType, err)
		}
	}

	items, err := repo.FindAll(ctx, userID, MealPlanFilter{DateFrom: "2024-06-09", DateTo: "2024-06-15"})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	want := []models.MealType{
		models.MealTypeBreakfast, models.MealTypeLunch, models.MealTypeDinner, models.MealTypeSnack,
		models.MealTypeBreakfast,
	}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, item := range items {
		if item.MealType != want[i] {
			t.Errorf("position %d: got %s, want %s", i, item.MealType, want[i])
		}
	}
	if items[4].Date != "2024-06-11" {
		t.Errorf("later date should sort last, got %s", items[4].Date)
	}
}

func TestMealPlanUpdateServingsAndDelete(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userID := testutil.CreateTestUser(t, db)
	repo := NewMealPlanRepository(db)
	ctx := context.Background()

	item, err := repo.Upsert(ctx, models.MealPlanItem{
		UserID: userID, Date: "2024-06-12", MealType: models.MealTypeLunch, RecipeID: "r", Servings: 2,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := repo.UpdateServings(ctx, userID, item.ID, 6); err != nil {
		t.Fatalf("UpdateServings: %v", err)
	}
	fetched, err := repo.FindBySlot(ctx, userID, "2024-06-12", models.MealTypeLunch)
	if err != nil {
		t.Fatalf("FindBySlot: %v", err)
	}
	if fetched.Servings != 6 {
		t.Errorf("expected servings 6, got %d", fetched.Servings)
	}

	if err := repo.Delete(ctx, userID, item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	items, err := repo.FindAll(ctx, userID, MealPlanFilter{})
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no rows after delete, got %v", items)
	}
}
