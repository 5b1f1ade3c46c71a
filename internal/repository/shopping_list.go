package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/google/uuid"
)

type ShoppingListRepository interface {
	FindAll(ctx context.Context, userID string) ([]models.ShoppingListItem, error)
	Create(ctx context.Context, item models.ShoppingListItem) (models.ShoppingListItem, error)
	SetCompleted(ctx context.Context, userID string, id string, completed bool) error
	Delete(ctx context.Context, userID string, id string) error
	DeleteCompleted(ctx context.Context, userID string) error
}

type SQLiteShoppingListRepository struct {
	database *sql.DB
}

func NewShoppingListRepository(database *sql.DB) *SQLiteShoppingListRepository {
	return &SQLiteShoppingListRepository{database: database}
}

func (repository *SQLiteShoppingListRepository) FindAll(ctx context.Context, userID string) ([]models.ShoppingListItem, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, user_id, ingredient_name, quantity, unit, is_completed, created_at, updated_at
		FROM shopping_list WHERE user_id = ?
		ORDER BY is_completed ASC, ingredient_name ASC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding shopping list items: %w", err)
	}
	defer rows.Close()

	var items []models.ShoppingListItem
	for rows.Next() {
		var item models.ShoppingListItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.IngredientName,
			&item.Quantity, &item.Unit, &item.IsCompleted,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning shopping list item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (repository *SQLiteShoppingListRepository) Create(ctx context.Context, item models.ShoppingListItem) (models.ShoppingListItem, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO shopping_list (id, user_id, ingredient_name, quantity, unit, is_completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.UserID, item.IngredientName, item.Quantity, item.Unit, item.IsCompleted,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return models.ShoppingListItem{}, fmt.Errorf("creating shopping list item: %w", err)
	}
	return item, nil
}

func (repository *SQLiteShoppingListRepository) SetCompleted(ctx context.Context, userID string, id string, completed bool) error {
	_, err := repository.database.ExecContext(ctx,
		`UPDATE shopping_list SET is_completed = ?, updated_at = ? WHERE user_id = ? AND id = ?`,
		completed, time.Now(), userID, id,
	)
	if err != nil {
		return fmt.Errorf("toggling shopping list item: %w", err)
	}
	return nil
}

func (repository *SQLiteShoppingListRepository) Delete(ctx context.Context, userID string, id string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM shopping_list WHERE user_id = ? AND id = ?", userID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting shopping list item: %w", err)
	}
	return nil
}

func (repository *SQLiteShoppingListRepository) DeleteCompleted(ctx context.Context, userID string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM shopping_list WHERE user_id = ? AND is_completed = 1", userID,
	)
	if err != nil {
		return fmt.Errorf("clearing completed shopping list items: %w", err)
	}
	return nil
}
