package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JashanveerS/TastyTray/internal/models"
)

// MealDBClient talks to TheMealDB, the free provider. Its records are a
// flat bag of up to 20 strIngredientN/strMeasureN pairs and a single
// instructions blob, so most of the normalized Recipe is synthesized.
type MealDBClient struct {
	baseURL string
	client  *http.Client
}

func NewMealDBClient(baseURL string) *MealDBClient {
	return &MealDBClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type mealDBResponse struct {
	Meals []map[string]*string `json:"meals"`
}

func (c *MealDBClient) Random(ctx context.Context) (Recipe, error) {
	meals, err := c.fetch(ctx, c.baseURL+"/random.php")
	if err != nil {
		return Recipe{}, err
	}
	if len(meals) == 0 {
		return Recipe{}, fmt.Errorf("mealdb returned no meals")
	}
	return transformMeal(meals[0]), nil
}

func (c *MealDBClient) Search(ctx context.Context, query string) ([]Recipe, error) {
	meals, err := c.fetch(ctx, c.baseURL+"/search.php?s="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}

	var results []Recipe
	for _, meal := range meals {
		results = append(results, transformMeal(meal))
	}
	return results, nil
}

func (c *MealDBClient) fetch(ctx context.Context, requestURL string) ([]map[string]*string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building mealdb request: %w", err)
	}

	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetching from mealdb: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mealdb returned status %d", response.StatusCode)
	}

	var decoded mealDBResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding mealdb response: %w", err)
	}
	return decoded.Meals, nil
}

func transformMeal(meal map[string]*string) Recipe {
	id := field(meal, "idMeal")
	instructions := field(meal, "strInstructions")

	var ingredients []Ingredient
	for i := 1; i <= 20; i++ {
		name := strings.TrimSpace(field(meal, fmt.Sprintf("strIngredient%d", i)))
		if name == "" {
			continue
		}
		measure := strings.TrimSpace(field(meal, fmt.Sprintf("strMeasure%d", i)))
		ingredients = append(ingredients, Ingredient{
			ID:     fmt.Sprintf("%s-%d", id, i),
			Name:   name,
			Amount: 1,
			Unit:   measure,
		})
	}

	var steps []Step
	for _, sentence := range strings.Split(instructions, ".") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		steps = append(steps, Step{Num: len(steps) + 1, Instruction: sentence + "."})
	}

	var cuisines []string
	if area := field(meal, "strArea"); area != "" {
		cuisines = []string{area}
	}
	var tags []string
	if rawTags := field(meal, "strTags"); rawTags != "" {
		tags = strings.Split(rawTags, ",")
	}

	return Recipe{
		ID:          id,
		Name:        field(meal, "strMeal"),
		Image:       field(meal, "strMealThumb"),
		Servings:    4,
		CookTime:    30,
		Description: truncate(instructions, 150),
		Steps:       steps,
		Ingredients: ingredients,
		// MealDB carries no nutrition data; these are placeholder values,
		// not a computation.
		Nutrition: Nutrition{
			Calories: 250,
			Protein:  20,
			Carbs:    30,
			Fat:      10,
			Fiber:    5,
			Sugar:    8,
			Sodium:   400,
		},
		Cuisines:   cuisines,
		Tags:       tags,
		Difficulty: models.DifficultyMedium,
		Source:     "mealdb",
	}
}

func field(meal map[string]*string, key string) string {
	if value := meal[key]; value != nil {
		return *value
	}
	return ""
}

// truncate counts runes, not bytes, so a cut never splits a multi-byte
// character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
