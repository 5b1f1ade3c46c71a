package recipes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mealDBSearchBody = `{"meals":[{
	"idMeal":"52772",
	"strMeal":"Teriyaki Chicken Casserole",
	"strMealThumb":"https://example.com/teriyaki.jpg",
	"strArea":"Japanese",
	"strTags":"Meat,Casserole",
	"strInstructions":"Preheat oven to 350F. Combine soy sauce and water. Bake for 30 minutes.",
	"strIngredient1":"soy sauce",
	"strMeasure1":"3/4 cup",
	"strIngredient2":"water",
	"strMeasure2":"1/2 cup",
	"strIngredient3":"",
	"strMeasure3":"",
	"strIngredient4":null,
	"strMeasure4":null
}]}`

func TestMealDBSearchTransformsMeal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.php", r.URL.Path)
		assert.Equal(t, "chicken", r.URL.Query().Get("s"))
		w.Write([]byte(mealDBSearchBody))
	}))
	defer server.Close()

	client := NewMealDBClient(server.URL)
	results, err := client.Search(context.Background(), "chicken")
	require.NoError(t, err)
	require.Len(t, results, 1)

	recipe := results[0]
	assert.Equal(t, "52772", recipe.ID)
	assert.Equal(t, "Teriyaki Chicken Casserole", recipe.Name)
	assert.Equal(t, "mealdb", recipe.Source)
	assert.Equal(t, 4, recipe.Servings)
	assert.Equal(t, 30, recipe.CookTime)
	assert.Equal(t, []string{"Japanese"}, recipe.Cuisines)
	assert.Equal(t, []string{"Meat", "Casserole"}, recipe.Tags)

	// Blank and null ingredient slots are skipped.
	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, "soy sauce", recipe.Ingredients[0].Name)
	assert.Equal(t, "3/4 cup", recipe.Ingredients[0].Unit)
	assert.Equal(t, 1.0, recipe.Ingredients[0].Amount)

	// The instructions blob is split into numbered sentence steps.
	require.Len(t, recipe.Steps, 3)
	assert.Equal(t, 1, recipe.Steps[0].Num)
	assert.Equal(t, "Preheat oven to 350F.", recipe.Steps[0].Instruction)
	assert.Equal(t, "Bake for 30 minutes.", recipe.Steps[2].Instruction)

	// No nutrition data upstream; placeholder values stand in.
	assert.Equal(t, 250.0, recipe.Nutrition.Calories)
	assert.Nil(t, recipe.Rating)
}

func TestMealDBRandomRejectsEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meals":null}`))
	}))
	defer server.Close()

	client := NewMealDBClient(server.URL)
	_, err := client.Random(context.Background())
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 150))
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'x'
	}
	got := truncate(string(long), 150)
	assert.Len(t, got, 153)
	assert.Equal(t, "...", got[150:])
}

func TestTruncateKeepsMultiByteRunesIntact(t *testing.T) {
	// Each rune is multi-byte; a byte-indexed cut at 150 would land
	// mid-rune and corrupt the string.
	instructions := strings.Repeat("é", 200)
	got := truncate(instructions, 150)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 150)+"...", got)
}
