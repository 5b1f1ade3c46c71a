package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/JashanveerS/TastyTray/internal/repository"
)

var (
	ErrInvalidMealType = errors.New("invalid meal type")
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
)

// PlannerService enforces the one-recipe-per-slot rule and exposes the
// weekly grid over meal plan rows.
type PlannerService struct {
	mealPlanRepo repository.MealPlanRepository
}

func NewPlannerService(mealPlanRepo repository.MealPlanRepository) *PlannerService {
	return &PlannerService{mealPlanRepo: mealPlanRepo}
}

// WeekOf returns the seven dates of the Sunday-to-Saturday week containing
// the anchor date.
func WeekOf(anchor time.Time) []string {
	start := anchor.AddDate(0, 0, -int(anchor.Weekday()))
	dates := make([]string, 7)
	for i := 0; i < 7; i++ {
		dates[i] = start.AddDate(0, 0, i).Format("2006-01-02")
	}
	return dates
}

// WeekGrid is date -> meal type -> the (at most one) assigned item.
type WeekGrid map[string]map[models.MealType]models.MealPlanItem

// Week loads the planner grid for the week containing anchor.
func (service *PlannerService) Week(ctx context.Context, userID string, anchor time.Time) ([]string, WeekGrid, error) {
	dates := WeekOf(anchor)

	items, err := service.mealPlanRepo.FindAll(ctx, userID, repository.MealPlanFilter{
		DateFrom: dates[0],
		DateTo:   dates[6],
	})
	if err != nil {
		return nil, nil, fmt.Errorf("loading meal plans for week: %w", err)
	}

	grid := make(WeekGrid)
	for _, item := range items {
		if grid[item.Date] == nil {
			grid[item.Date] = make(map[models.MealType]models.MealPlanItem)
		}
		grid[item.Date][item.MealType] = item
	}
	return dates, grid, nil
}

// Assign puts a recipe into a slot, replacing any current occupant.
func (service *PlannerService) Assign(ctx context.Context, item models.MealPlanItem) (models.MealPlanItem, error) {
	if !item.MealType.Valid() {
		return models.MealPlanItem{}, ErrInvalidMealType
	}
	if _, err := time.Parse("2006-01-02", item.Date); err != nil {
		return models.MealPlanItem{}, ErrInvalidDate
	}
	if item.Servings < 1 {
		item.Servings = 1
	}

	saved, err := service.mealPlanRepo.Upsert(ctx, item)
	if err != nil {
		return models.MealPlanItem{}, fmt.Errorf("assigning meal slot: %w", err)
	}
	return saved, nil
}
