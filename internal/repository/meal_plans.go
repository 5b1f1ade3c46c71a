package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/google/uuid"
)

type MealPlanFilter struct {
	DateFrom string
	DateTo   string
}

type MealPlanRepository interface {
	FindBySlot(ctx context.Context, userID string, date string, mealType models.MealType) (models.MealPlanItem, error)
	FindAll(ctx context.Context, userID string, filter MealPlanFilter) ([]models.MealPlanItem, error)
	Upsert(ctx context.Context, item models.MealPlanItem) (models.MealPlanItem, error)
	UpdateServings(ctx context.Context, userID string, id string, servings int) error
	Delete(ctx context.Context, userID string, id string) error
}

type SQLiteMealPlanRepository struct {
	database *sql.DB
}

func NewMealPlanRepository(database *sql.DB) *SQLiteMealPlanRepository {
	return &SQLiteMealPlanRepository{database: database}
}

func (repository *SQLiteMealPlanRepository) FindBySlot(ctx context.Context, userID string, date string, mealType models.MealType) (models.MealPlanItem, error) {
	var item models.MealPlanItem
	err := repository.database.QueryRowContext(ctx,
		`SELECT id, user_id, date, meal_type, recipe_id, recipe_title, recipe_image, servings, created_at
		FROM meal_plans WHERE user_id = ? AND date = ? AND meal_type = ?`,
		userID, date, mealType,
	).Scan(
		&item.ID, &item.UserID, &item.Date, &item.MealType,
		&item.RecipeID, &item.RecipeTitle, &item.RecipeImage,
		&item.Servings, &item.CreatedAt,
	)
	if err != nil {
		return models.MealPlanItem{}, fmt.Errorf("finding meal plan slot: %w", err)
	}
	return item, nil
}

func (repository *SQLiteMealPlanRepository) FindAll(ctx context.Context, userID string, filter MealPlanFilter) ([]models.MealPlanItem, error) {
	query := `SELECT id, user_id, date, meal_type, recipe_id, recipe_title, recipe_image, servings, created_at
	FROM meal_plans WHERE user_id = ?`

	args := []interface{}{userID}

	if filter.DateFrom != "" {
		query += " AND date >= ?"
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		query += " AND date <= ?"
		args = append(args, filter.DateTo)
	}

	query += " ORDER BY date ASC, CASE meal_type WHEN 'breakfast' THEN 1 WHEN 'lunch' THEN 2 WHEN 'dinner' THEN 3 WHEN 'snack' THEN 4 END"

	rows, err := repository.database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding meal plans: %w", err)
	}
	defer rows.Close()

	var items []models.MealPlanItem
	for rows.Next() {
		var item models.MealPlanItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Date, &item.MealType,
			&item.RecipeID, &item.RecipeTitle, &item.RecipeImage,
			&item.Servings, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning meal plan: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Upsert assigns a recipe to the (user, date, meal type) slot, replacing
// whatever recipe currently holds it. The unique constraint on the slot
// makes the replace atomic, so two racing writers cannot leave two rows.
func (repository *SQLiteMealPlanRepository) Upsert(ctx context.Context, item models.MealPlanItem) (models.MealPlanItem, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = time.Now()

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO meal_plans (id, user_id, date, meal_type, recipe_id, recipe_title, recipe_image, servings, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date, meal_type) DO UPDATE SET
			recipe_id = excluded.recipe_id,
			recipe_title = excluded.recipe_title,
			recipe_image = excluded.recipe_image,
			servings = excluded.servings`,
		item.ID, item.UserID, item.Date, item.MealType,
		item.RecipeID, item.RecipeTitle, item.RecipeImage,
		item.Servings, item.CreatedAt,
	)
	if err != nil {
		return models.MealPlanItem{}, fmt.Errorf("upserting meal plan: %w", err)
	}

	// On conflict the existing row keeps its id; read the slot back so the
	// caller always sees the persisted row.
	return repository.FindBySlot(ctx, item.UserID, item.Date, item.MealType)
}

func (repository *SQLiteMealPlanRepository) UpdateServings(ctx context.Context, userID string, id string, servings int) error {
	_, err := repository.database.ExecContext(ctx,
		"UPDATE meal_plans SET servings = ? WHERE user_id = ? AND id = ?",
		servings, userID, id,
	)
	if err != nil {
		return fmt.Errorf("updating meal plan servings: %w", err)
	}
	return nil
}

func (repository *SQLiteMealPlanRepository) Delete(ctx context.Context, userID string, id string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM meal_plans WHERE user_id = ? AND id = ?", userID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting meal plan: %w", err)
	}
	return nil
}
