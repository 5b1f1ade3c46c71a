package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/JashanveerS/TastyTray/internal/recipes"
)

type RecipeHandler struct {
	recipeService *recipes.Service
}

func NewRecipeHandler(recipeService *recipes.Service) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

func (handler *RecipeHandler) Random(w http.ResponseWriter, r *http.Request) {
	count := 12
	if raw := r.URL.Query().Get("count"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 50 {
			count = parsed
		}
	}

	found := handler.recipeService.Random(r.Context(), count)
	if found == nil {
		found = []recipes.Recipe{}
	}
	writeJSON(w, http.StatusOK, found)
}

func (handler *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	options := recipes.SearchOptions{
		Query:              query.Get("query"),
		Cuisines:           splitParam(query.Get("cuisine")),
		Diets:              splitParam(query.Get("diet")),
		Intolerances:       splitParam(query.Get("intolerances")),
		Ingredients:        splitParam(query.Get("ingredients")),
		ExcludeIngredients: splitParam(query.Get("exclude_ingredients")),
	}
	if raw := query.Get("max_time"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			options.MaxTime = parsed
		}
	}

	found := handler.recipeService.Search(r.Context(), options)
	if found == nil {
		found = []recipes.Recipe{}
	}
	writeJSON(w, http.StatusOK, found)
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
