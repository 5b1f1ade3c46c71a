package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/JashanveerS/TastyTray/internal/recipes"
	"github.com/JashanveerS/TastyTray/internal/repository"
)

// Choice is the per-ingredient routing decision: buy it, already own it,
// or leave it out entirely.
type Choice string

const (
	ChoiceShopping Choice = "shopping"
	ChoicePantry   Choice = "pantry"
	ChoiceSkip     Choice = "skip"
)

func (c Choice) Valid() bool {
	switch c {
	case ChoiceShopping, ChoicePantry, ChoiceSkip:
		return true
	}
	return false
}

// Suggestion is one pre-filtered ingredient with its scaled quantity and
// the default routing inferred from the pantry snapshot. The client may
// override the choice before committing.
type Suggestion struct {
	Ingredient     recipes.Ingredient `json:"ingredient"`
	AdjustedAmount float64            `json:"adjusted_amount"`
	InPantry       bool               `json:"in_pantry"`
	Choice         Choice             `json:"choice"`
}

// Decision is a confirmed routing for one ingredient.
type Decision struct {
	Ingredient     recipes.Ingredient `json:"ingredient"`
	AdjustedAmount float64            `json:"adjusted_amount"`
	Choice         Choice             `json:"choice"`
}

// ReconcileService routes a planned recipe's ingredients to the pantry or
// the shopping list.
type ReconcileService struct {
	pantryRepo   repository.PantryRepository
	shoppingRepo repository.ShoppingListRepository
}

func NewReconcileService(pantryRepo repository.PantryRepository, shoppingRepo repository.ShoppingListRepository) *ReconcileService {
	return &ReconcileService{pantryRepo: pantryRepo, shoppingRepo: shoppingRepo}
}

// Recipe APIs sometimes mis-parse instruction text into the ingredient
// list; names containing these words are assumed to be such noise.
var instructionKeywords = []string{
	"preheat", "heat oven", "mix", "cook", "bake",
	"step", "then", "meanwhile", "serve", "garnish",
}

const maxIngredientNameLength = 100

func looksLikeInstruction(name string) bool {
	lowered := strings.ToLower(name)
	for _, keyword := range instructionKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// FilterIngredients drops entries that are empty, over-long, or read like
// instruction text. This is a data-quality workaround for sloppy provider
// parsing, not a correctness guarantee.
func FilterIngredients(ingredients []recipes.Ingredient) []recipes.Ingredient {
	var filtered []recipes.Ingredient
	for _, ingredient := range ingredients {
		name := strings.TrimSpace(ingredient.Name)
		if name == "" || len(name) > maxIngredientNameLength {
			continue
		}
		if looksLikeInstruction(name) {
			continue
		}
		filtered = append(filtered, ingredient)
	}
	return filtered
}

// InPantry reports whether any pantry item name matches the ingredient
// name as a case-insensitive substring in either direction. The symmetric
// match keeps "tomato" and "tomato sauce" together at the cost of false
// positives like "egg" vs "eggplant".
func InPantry(ingredientName string, pantry []models.PantryItem) bool {
	ingredient := strings.ToLower(strings.TrimSpace(ingredientName))
	if ingredient == "" {
		return false
	}
	for _, item := range pantry {
		owned := strings.ToLower(strings.TrimSpace(item.IngredientName))
		if owned == "" {
			continue
		}
		if strings.Contains(ingredient, owned) || strings.Contains(owned, ingredient) {
			return true
		}
	}
	return false
}

// ScaleAmount adjusts an ingredient quantity from the recipe's serving
// count to the planned one. Recipes with zero or negative servings are
// treated as serving one.
func ScaleAmount(amount float64, recipeServings int, plannedServings int) float64 {
	if recipeServings < 1 {
		recipeServings = 1
	}
	if plannedServings < 1 {
		plannedServings = 1
	}
	return amount * float64(plannedServings) / float64(recipeServings)
}

// BuildPlan fetches the user's current pantry and returns a suggestion
// per usable ingredient. Ingredients already in the pantry default to
// "pantry"; everything else defaults to "shopping".
func (service *ReconcileService) BuildPlan(ctx context.Context, userID string, recipe recipes.Recipe, plannedServings int) ([]Suggestion, error) {
	pantry, err := service.pantryRepo.FindAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading pantry for reconciliation: %w", err)
	}

	var suggestions []Suggestion
	for _, ingredient := range FilterIngredients(recipe.Ingredients) {
		owned := InPantry(ingredient.Name, pantry)
		choice := ChoiceShopping
		if owned {
			choice = ChoicePantry
		}
		suggestions = append(suggestions, Suggestion{
			Ingredient:     ingredient,
			AdjustedAmount: ScaleAmount(ingredient.Amount, recipe.Servings, plannedServings),
			InPantry:       owned,
			Choice:         choice,
		})
	}
	return suggestions, nil
}

// Commit persists each decision independently: "pantry" inserts a pantry
// item with no quantity, "shopping" inserts a shopping list item with the
// scaled quantity, "skip" does nothing. There is no transaction across
// items and no dedup against existing rows; a failure partway through
// leaves the already-written items in place and the failed ones reported.
func (service *ReconcileService) Commit(ctx context.Context, userID string, decisions []Decision) error {
	var failures []error
	for _, decision := range decisions {
		switch decision.Choice {
		case ChoicePantry:
			item := models.PantryItem{
				UserID:         userID,
				IngredientName: decision.Ingredient.Name,
			}
			if decision.Ingredient.Unit != "" {
				unit := decision.Ingredient.Unit
				item.Unit = &unit
			}
			if _, err := service.pantryRepo.Create(ctx, item); err != nil {
				failures = append(failures, fmt.Errorf("pantry insert for %q: %w", decision.Ingredient.Name, err))
			}
		case ChoiceShopping:
			amount := decision.AdjustedAmount
			item := models.ShoppingListItem{
				UserID:         userID,
				IngredientName: decision.Ingredient.Name,
				Quantity:       &amount,
			}
			if decision.Ingredient.Unit != "" {
				unit := decision.Ingredient.Unit
				item.Unit = &unit
			}
			if _, err := service.shoppingRepo.Create(ctx, item); err != nil {
				failures = append(failures, fmt.Errorf("shopping list insert for %q: %w", decision.Ingredient.Name, err))
			}
		case ChoiceSkip:
		default:
			failures = append(failures, fmt.Errorf("unknown choice %q for %q", decision.Choice, decision.Ingredient.Name))
		}
	}
	return errors.Join(failures...)
}
