package services

import (
	"context"
	"testing"

	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/JashanveerS/TastyTray/internal/recipes"
	"github.com/JashanveerS/TastyTray/internal/repository"
	"github.com/JashanveerS/TastyTray/internal/testutil"
)

func TestFilterIngredients(t *testing.T) {
	longName := make([]byte, 101)
	for i := range longName {
		longName[i] = 'a'
	}

	ingredients := []recipes.Ingredient{
		{Name: "Tomato", Amount: 2},
		{Name: ""},
		{Name: "   "},
		{Name: "Preheat oven to 350F and grease a pan"},
		{Name: "Then add the flour"},
		{Name: "Serve with rice"},
		{Name: string(longName)},
		{Name: "Olive Oil", Amount: 1},
	}

	filtered := FilterIngredients(ingredients)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 ingredients after filtering, got %d: %v", len(filtered), filtered)
	}
	if filtered[0].Name != "Tomato" || filtered[1].Name != "Olive Oil" {
		t.Errorf("unexpected survivors: %v", filtered)
	}
}

func TestInPantrySymmetricSubstring(t *testing.T) {
	pantry := []models.PantryItem{
		{IngredientName: "Tomato"},
		{IngredientName: "whole milk"},
	}

	cases := []struct {
		ingredient string
		want       bool
	}{
		{"tomato sauce", true},
		{"Tomato", true},
		{"milk", true},
		{"MILK", true},
		{"flour", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := InPantry(tc.ingredient, pantry); got != tc.want {
			t.Errorf("InPantry(%q) = %v, want %v", tc.ingredient, got, tc.want)
		}
	}
}

func TestScaleAmount(t *testing.T) {
	cases := []struct {
		name            string
		amount          float64
		recipeServings  int
		plannedServings int
		want            float64
	}{
		{"scale up", 2, 4, 6, 3},
		{"scale down", 4, 4, 2, 2},
		{"same servings", 1.5, 4, 4, 1.5},
		{"zero recipe servings treated as one", 2, 0, 3, 6},
		{"zero planned servings treated as one", 2, 4, 0, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ScaleAmount(tc.amount, tc.recipeServings, tc.plannedServings); got != tc.want {
				t.Errorf("ScaleAmount(%v, %d, %d) = %v, want %v", tc.amount, tc.recipeServings, tc.plannedServings, got, tc.want)
			}
		})
	}
}

func TestBuildPlanDefaultsChoices(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userID := testutil.CreateTestUser(t, db)
	pantryRepo := repository.NewPantryRepository(db)
	shoppingRepo := repository.NewShoppingListRepository(db)
	service := NewReconcileService(pantryRepo, shoppingRepo)
	ctx := context.Background()

	if _, err := pantryRepo.Create(ctx, models.PantryItem{UserID: userID, IngredientName: "Tomato"}); err != nil {
		t.Fatalf("seeding pantry: %v", err)
	}

	recipe := recipes.Recipe{
		Servings: 4,
		Ingredients: []recipes.Ingredient{
			{Name: "tomato sauce", Amount: 2, Unit: "cups"},
			{Name: "flour", Amount: 1, Unit: "cup"},
			{Name: "Preheat oven to 350F"},
		},
	}

	suggestions, err := service.BuildPlan(ctx, userID, recipe, 6)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}

	sauce := suggestions[0]
	if !sauce.InPantry || sauce.Choice != ChoicePantry {
		t.Errorf("tomato sauce should default to pantry, got %+v", sauce)
	}
	if sauce.AdjustedAmount != 3 {
		t.Errorf("expected adjusted amount 3 for tomato sauce, got %v", sauce.AdjustedAmount)
	}

	flour := suggestions[1]
	if flour.InPantry || flour.Choice != ChoiceShopping {
		t.Errorf("flour should default to shopping, got %+v", flour)
	}
}

func TestCommitRoutesDecisions(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userID := testutil.CreateTestUser(t, db)
	pantryRepo := repository.NewPantryRepository(db)
	shoppingRepo := repository.NewShoppingListRepository(db)
	service := NewReconcileService(pantryRepo, shoppingRepo)
	ctx := context.Background()

	decisions := []Decision{
		{Ingredient: recipes.Ingredient{Name: "flour", Unit: "cup"}, AdjustedAmount: 1.5, Choice: ChoiceShopping},
		{Ingredient: recipes.Ingredient{Name: "salt"}, Choice: ChoicePantry},
		{Ingredient: recipes.Ingredient{Name: "water"}, Choice: ChoiceSkip},
	}

	if err := service.Commit(ctx, userID, decisions); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	shopping, err := shoppingRepo.FindAll(ctx, userID)
	if err != nil {
		t.Fatalf("listing shopping items: %v", err)
	}
	if len(shopping) != 1 || shopping[0].IngredientName != "flour" {
		t.Fatalf("expected one shopping item for flour, got %v", shopping)
	}
	if shopping[0].Quantity == nil || *shopping[0].Quantity != 1.5 {
		t.Errorf("expected scaled quantity 1.5, got %v", shopping[0].Quantity)
	}

	pantry, err := pantryRepo.FindAll(ctx, userID)
	if err != nil {
		t.Fatalf("listing pantry items: %v", err)
	}
	if len(pantry) != 1 || pantry[0].IngredientName != "salt" {
		t.Fatalf("expected one pantry item for salt, got %v", pantry)
	}
	if pantry[0].Quantity != nil {
		t.Errorf("pantry inserts should carry no quantity, got %v", *pantry[0].Quantity)
	}
}

func TestCommitReportsUnknownChoice(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userID := testutil.CreateTestUser(t, db)
	pantryRepo := repository.NewPantryRepository(db)
	shoppingRepo := repository.NewShoppingListRepository(db)
	service := NewReconcileService(pantryRepo, shoppingRepo)
	ctx := context.Background()

	decisions := []Decision{
		{Ingredient: recipes.Ingredient{Name: "flour"}, Choice: ChoiceShopping},
		{Ingredient: recipes.Ingredient{Name: "sugar"}, Choice: Choice("discard")},
	}

	err := service.Commit(ctx, userID, decisions)
	if err == nil {
		t.Fatal("expected an error for the unknown choice")
	}

	// The valid decision before the failure must still have been written.
	shopping, listErr := shoppingRepo.FindAll(ctx, userID)
	if listErr != nil {
		t.Fatalf("listing shopping items: %v", listErr)
	}
	if len(shopping) != 1 {
		t.Errorf("expected the flour insert to survive, got %v", shopping)
	}
}
