package models

import "time"

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

func (m MealType) Valid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// NutritionGoals holds the daily targets a user sets on their profile.
type NutritionGoals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type User struct {
	ID               string
	Email            string
	PasswordHash     *string
	OIDCSubject      *string
	FullName         string
	AvatarURL        string
	Preferences      []string
	Allergies        []string
	FavoriteCuisines []string
	Goals            NutritionGoals
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Favorite struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	RecipeID    string    `json:"recipe_id"`
	RecipeTitle string    `json:"recipe_title"`
	RecipeImage string    `json:"recipe_image"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExpiryStatus is derived from a pantry item's expiry date at read time;
// it is never stored.
type ExpiryStatus string

const (
	ExpiryOK      ExpiryStatus = "ok"
	ExpirySoon    ExpiryStatus = "expiring_soon"
	ExpiryExpired ExpiryStatus = "expired"
)

type PantryItem struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	IngredientName string    `json:"ingredient_name"`
	Quantity       *float64  `json:"quantity"`
	Unit           *string   `json:"unit"`
	ExpiryDate     *string   `json:"expiry_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ShoppingListItem struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	IngredientName string    `json:"ingredient_name"`
	Quantity       *float64  `json:"quantity"`
	Unit           *string   `json:"unit"`
	IsCompleted    bool      `json:"is_completed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MealPlanItem is one recipe assigned to a (date, meal type) slot. The
// recipe title, image and servings are denormalized from the provider
// response at assignment time.
type MealPlanItem struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Date        string    `json:"date"`
	MealType    MealType  `json:"meal_type"`
	RecipeID    string    `json:"recipe_id"`
	RecipeTitle string    `json:"recipe_title"`
	RecipeImage string    `json:"recipe_image"`
	Servings    int       `json:"servings"`
	CreatedAt   time.Time `json:"created_at"`
}

// ShareToken grants read access to a user's calendar feed without a
// session. Only the sha256 hash of the token is stored.
type ShareToken struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	TokenHash string     `json:"-"`
	Scope     string     `json:"scope"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}
