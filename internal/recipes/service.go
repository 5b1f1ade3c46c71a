package recipes

import (
	"context"
	"log/slog"
)

// Service aggregates the two providers. Provider failures are logged and
// treated as zero results from that provider; callers never see an error
// for a flaky upstream, only a shorter (possibly empty) list.
type Service struct {
	mealDB *MealDBClient
	spoon  *SpoonacularClient
}

// NewService wires the free provider and, when apiKey is non-empty, the
// paid one.
func NewService(mealDBBaseURL string, spoonBaseURL string, apiKey string) *Service {
	service := &Service{
		mealDB: NewMealDBClient(mealDBBaseURL),
	}
	if apiKey != "" {
		service.spoon = NewSpoonacularClient(spoonBaseURL, apiKey)
	}
	return service
}

func (service *Service) Random(ctx context.Context, count int) []Recipe {
	if count <= 0 {
		count = 12
	}

	var results []Recipe
	for i := 0; i < count; i++ {
		recipe, err := service.mealDB.Random(ctx)
		if err != nil {
			slog.Warn("mealdb random fetch failed", "error", err)
			break
		}
		results = append(results, recipe)
	}

	if len(results) < count && service.spoon != nil {
		remaining, err := service.spoon.Random(ctx, count-len(results))
		if err != nil {
			slog.Warn("spoonacular random fetch failed", "error", err)
		} else {
			results = append(results, remaining...)
		}
	}

	if len(results) > count {
		results = results[:count]
	}
	return results
}

func (service *Service) Search(ctx context.Context, options SearchOptions) []Recipe {
	var results []Recipe

	if options.Query != "" {
		found, err := service.mealDB.Search(ctx, options.Query)
		if err != nil {
			slog.Warn("mealdb search failed", "error", err)
		} else {
			if len(found) > 6 {
				found = found[:6]
			}
			results = append(results, found...)
		}
	}

	if service.spoon != nil {
		found, err := service.spoon.Search(ctx, options)
		if err != nil {
			slog.Warn("spoonacular search failed", "error", err)
		} else {
			results = append(results, found...)
		}
	}

	return results
}
