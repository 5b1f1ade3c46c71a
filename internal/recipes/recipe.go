package recipes

import "github.com/JashanveerS/TastyTray/internal/models"

// Recipe is the normalized shape both providers map into. Recipes are
// never persisted whole; meal plans and favorites copy the few fields
// they need.
type Recipe struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Image       string            `json:"image"`
	Servings    int               `json:"servings"`
	CookTime    int               `json:"cook_time"`
	Description string            `json:"description"`
	Steps       []Step            `json:"steps"`
	Ingredients []Ingredient      `json:"ingredients"`
	Nutrition   Nutrition         `json:"nutrition"`
	Cuisines    []string          `json:"cuisines"`
	Tags        []string          `json:"tags"`
	Difficulty  models.Difficulty `json:"difficulty"`
	Rating      *float64          `json:"rating,omitempty"`
	Source      string            `json:"source"`
}

type Step struct {
	Num         int    `json:"num"`
	Instruction string `json:"instruction"`
}

type Ingredient struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Image  string  `json:"image,omitempty"`
}

type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

type SearchOptions struct {
	Query              string
	Cuisines           []string
	Diets              []string
	Intolerances       []string
	MaxTime            int
	Ingredients        []string
	ExcludeIngredients []string
}
