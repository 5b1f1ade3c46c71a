package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/JashanveerS/TastyTray/internal/models"
)

// SpoonacularClient talks to the paid provider, which returns structured
// ingredients, steps and nutrients and supports filtered search.
type SpoonacularClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewSpoonacularClient(baseURL string, apiKey string) *SpoonacularClient {
	return &SpoonacularClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type spoonRecipe struct {
	ID                  int     `json:"id"`
	Title               string  `json:"title"`
	Image               string  `json:"image"`
	Servings            int     `json:"servings"`
	ReadyInMinutes      int     `json:"readyInMinutes"`
	Summary             string  `json:"summary"`
	SpoonacularScore    float64 `json:"spoonacularScore"`
	Cuisines            []string `json:"cuisines"`
	Diets               []string `json:"diets"`
	ExtendedIngredients []struct {
		ID     int     `json:"id"`
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Unit   string  `json:"unit"`
		Image  string  `json:"image"`
	} `json:"extendedIngredients"`
	AnalyzedInstructions []struct {
		Steps []struct {
			Number int    `json:"number"`
			Step   string `json:"step"`
		} `json:"steps"`
	} `json:"analyzedInstructions"`
	Nutrition struct {
		Nutrients []struct {
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
		} `json:"nutrients"`
	} `json:"nutrition"`
}

func (c *SpoonacularClient) Random(ctx context.Context, count int) ([]Recipe, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("number", strconv.Itoa(count))
	params.Set("includeNutrition", "true")

	var decoded struct {
		Recipes []spoonRecipe `json:"recipes"`
	}
	if err := c.get(ctx, c.baseURL+"/random?"+params.Encode(), &decoded); err != nil {
		return nil, err
	}

	var results []Recipe
	for _, recipe := range decoded.Recipes {
		results = append(results, transformSpoon(recipe))
	}
	return results, nil
}

func (c *SpoonacularClient) Search(ctx context.Context, options SearchOptions) ([]Recipe, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("number", "12")
	params.Set("includeNutrition", "true")

	if options.Query != "" {
		params.Set("query", options.Query)
	}
	if len(options.Cuisines) > 0 {
		params.Set("cuisine", strings.Join(options.Cuisines, ","))
	}
	if len(options.Diets) > 0 {
		params.Set("diet", strings.Join(options.Diets, ","))
	}
	if len(options.Intolerances) > 0 {
		params.Set("intolerances", strings.Join(options.Intolerances, ","))
	}
	if options.MaxTime > 0 {
		params.Set("maxReadyTime", strconv.Itoa(options.MaxTime))
	}
	if len(options.Ingredients) > 0 {
		params.Set("includeIngredients", strings.Join(options.Ingredients, ","))
	}
	if len(options.ExcludeIngredients) > 0 {
		params.Set("excludeIngredients", strings.Join(options.ExcludeIngredients, ","))
	}

	var decoded struct {
		Results []struct {
			ID int `json:"id"`
		} `json:"results"`
	}
	if err := c.get(ctx, c.baseURL+"/complexSearch?"+params.Encode(), &decoded); err != nil {
		return nil, err
	}

	results := decoded.Results
	if len(results) > 6 {
		results = results[:6]
	}

	// complexSearch results are shallow; each recipe needs a second call
	// for ingredients, steps and nutrients. A single failed detail fetch
	// drops that recipe only.
	var recipes []Recipe
	for _, result := range results {
		detail, err := c.information(ctx, result.ID)
		if err != nil {
			continue
		}
		recipes = append(recipes, transformSpoon(detail))
	}
	return recipes, nil
}

func (c *SpoonacularClient) information(ctx context.Context, id int) (spoonRecipe, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("includeNutrition", "true")

	var recipe spoonRecipe
	if err := c.get(ctx, fmt.Sprintf("%s/%d/information?%s", c.baseURL, id, params.Encode()), &recipe); err != nil {
		return spoonRecipe{}, err
	}
	return recipe, nil
}

func (c *SpoonacularClient) get(ctx context.Context, requestURL string, target interface{}) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("building spoonacular request: %w", err)
	}

	response, err := c.client.Do(request)
	if err != nil {
		return fmt.Errorf("fetching from spoonacular: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("spoonacular returned status %d", response.StatusCode)
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding spoonacular response: %w", err)
	}
	return nil
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

func transformSpoon(recipe spoonRecipe) Recipe {
	var ingredients []Ingredient
	for _, ing := range recipe.ExtendedIngredients {
		ingredients = append(ingredients, Ingredient{
			ID:     strconv.Itoa(ing.ID),
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
			Image:  ing.Image,
		})
	}

	var steps []Step
	if len(recipe.AnalyzedInstructions) > 0 {
		for _, step := range recipe.AnalyzedInstructions[0].Steps {
			steps = append(steps, Step{Num: step.Number, Instruction: step.Step})
		}
	}

	nutrients := make(map[string]float64, len(recipe.Nutrition.Nutrients))
	for _, nutrient := range recipe.Nutrition.Nutrients {
		nutrients[nutrient.Name] = nutrient.Amount
	}

	difficulty := models.DifficultyEasy
	switch {
	case recipe.ReadyInMinutes > 60:
		difficulty = models.DifficultyHard
	case recipe.ReadyInMinutes > 30:
		difficulty = models.DifficultyMedium
	}

	rating := recipe.SpoonacularScore / 20
	description := truncate(htmlTagPattern.ReplaceAllString(recipe.Summary, ""), 150)

	return Recipe{
		ID:          strconv.Itoa(recipe.ID),
		Name:        recipe.Title,
		Image:       recipe.Image,
		Servings:    recipe.Servings,
		CookTime:    recipe.ReadyInMinutes,
		Description: description,
		Steps:       steps,
		Ingredients: ingredients,
		Nutrition: Nutrition{
			Calories: nutrients["Calories"],
			Protein:  nutrients["Protein"],
			Carbs:    nutrients["Carbohydrates"],
			Fat:      nutrients["Fat"],
			Fiber:    nutrients["Fiber"],
			Sugar:    nutrients["Sugar"],
			Sodium:   nutrients["Sodium"],
		},
		Cuisines:   recipe.Cuisines,
		Tags:       recipe.Diets,
		Difficulty: difficulty,
		Rating:     &rating,
		Source:     "spoonacular",
	}
}
