package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/google/uuid"
)

type PantryRepository interface {
	FindAll(ctx context.Context, userID string) ([]models.PantryItem, error)
	FindByID(ctx context.Context, userID string, id string) (models.PantryItem, error)
	Create(ctx context.Context, item models.PantryItem) (models.PantryItem, error)
	Update(ctx context.Context, item models.PantryItem) error
	Delete(ctx context.Context, userID string, id string) error
}

type SQLitePantryRepository struct {
	database *sql.DB
}

func NewPantryRepository(database *sql.DB) *SQLitePantryRepository {
	return &SQLitePantryRepository{database: database}
}

func (repository *SQLitePantryRepository) FindAll(ctx context.Context, userID string) ([]models.PantryItem, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, user_id, ingredient_name, quantity, unit, expiry_date, created_at, updated_at
		FROM pantry_items WHERE user_id = ? ORDER BY ingredient_name ASC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding pantry items: %w", err)
	}
	defer rows.Close()

	var items []models.PantryItem
	for rows.Next() {
		var item models.PantryItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.IngredientName,
			&item.Quantity, &item.Unit, &item.ExpiryDate,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning pantry item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (repository *SQLitePantryRepository) FindByID(ctx context.Context, userID string, id string) (models.PantryItem, error) {
	var item models.PantryItem
	err := repository.database.QueryRowContext(ctx,
		`SELECT id, user_id, ingredient_name, quantity, unit, expiry_date, created_at, updated_at
		FROM pantry_items WHERE user_id = ? AND id = ?`, userID, id,
	).Scan(
		&item.ID, &item.UserID, &item.IngredientName,
		&item.Quantity, &item.Unit, &item.ExpiryDate,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return models.PantryItem{}, fmt.Errorf("finding pantry item: %w", err)
	}
	return item, nil
}

func (repository *SQLitePantryRepository) Create(ctx context.Context, item models.PantryItem) (models.PantryItem, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO pantry_items (id, user_id, ingredient_name, quantity, unit, expiry_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.UserID, item.IngredientName, item.Quantity, item.Unit, item.ExpiryDate,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return models.PantryItem{}, fmt.Errorf("creating pantry item: %w", err)
	}
	return item, nil
}

func (repository *SQLitePantryRepository) Update(ctx context.Context, item models.PantryItem) error {
	item.UpdatedAt = time.Now()

	_, err := repository.database.ExecContext(ctx,
		`UPDATE pantry_items SET ingredient_name = ?, quantity = ?, unit = ?, expiry_date = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`,
		item.IngredientName, item.Quantity, item.Unit, item.ExpiryDate, item.UpdatedAt,
		item.UserID, item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating pantry item: %w", err)
	}
	return nil
}

func (repository *SQLitePantryRepository) Delete(ctx context.Context, userID string, id string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM pantry_items WHERE user_id = ? AND id = ?", userID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting pantry item: %w", err)
	}
	return nil
}
