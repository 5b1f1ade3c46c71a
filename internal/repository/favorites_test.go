package repository

import (
	"context"
	"testing"

	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/JashanveerS/TastyTray/internal/testutil"
)

func TestFavoriteToggle(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userID := testutil.CreateTestUser(t, db)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()

	favorite := models.Favorite{
		UserID:      userID,
		RecipeID:    "mealdb-52772",
		RecipeTitle: "Teriyaki Chicken",
	}

	if _, err := repo.Create(ctx, favorite); err != nil {
		t.Fatalf("creating favorite: %v", err)
	}

	saved, err := repo.IsFavorite(ctx, userID, favorite.RecipeID)
	if err != nil {
		t.Fatalf("IsFavorite: %v", err)
	}
	if !saved {
		t.Error("recipe should be favorited after create")
	}

	// Re-favoriting the same recipe must not duplicate the row.
	if _, err := repo.Create(ctx, favorite); err != nil {
		t.Fatalf("re-creating favorite: %v", err)
	}
	all, err := repo.FindAll(ctx, userID)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one favorite row, got %d", len(all))
	}

	if err := repo.Delete(ctx, userID, favorite.RecipeID); err != nil {
		t.Fatalf("deleting favorite: %v", err)
	}
	saved, err = repo.IsFavorite(ctx, userID, favorite.RecipeID)
	if err != nil {
		t.Fatalf("IsFavorite after delete: %v", err)
	}
	if saved {
		t.Error("recipe should no longer be favorited after delete")
	}
}

func TestFavoritesAreUserScoped(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	alice := testutil.CreateTestUser(t, db)
	bob := testutil.CreateTestUser(t, db)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()

	if _, err := repo.Create(ctx, models.Favorite{UserID: alice, RecipeID: "spoon-716429", RecipeTitle: "Pasta"}); err != nil {
		t.Fatalf("creating favorite: %v", err)
	}

	isFavorite, err := repo.IsFavorite(ctx, bob, "spoon-716429")
	if err != nil {
		t.Fatalf("IsFavorite: %v", err)
	}
	if isFavorite {
		t.Error("one user's favorite must not leak to another")
	}
}
