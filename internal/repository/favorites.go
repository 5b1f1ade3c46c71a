package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/google/uuid"
)

type FavoriteRepository interface {
	FindAll(ctx context.Context, userID string) ([]models.Favorite, error)
	IsFavorite(ctx context.Context, userID string, recipeID string) (bool, error)
	Create(ctx context.Context, favorite models.Favorite) (models.Favorite, error)
	Delete(ctx context.Context, userID string, recipeID string) error
}

type SQLiteFavoriteRepository struct {
	database *sql.DB
}

func NewFavoriteRepository(database *sql.DB) *SQLiteFavoriteRepository {
	return &SQLiteFavoriteRepository{database: database}
}

func (repository *SQLiteFavoriteRepository) FindAll(ctx context.Context, userID string) ([]models.Favorite, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, user_id, recipe_id, recipe_title, recipe_image, created_at
		FROM favorites WHERE user_id = ? ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding favorites: %w", err)
	}
	defer rows.Close()

	var favorites []models.Favorite
	for rows.Next() {
		var favorite models.Favorite
		if err := rows.Scan(
			&favorite.ID, &favorite.UserID, &favorite.RecipeID,
			&favorite.RecipeTitle, &favorite.RecipeImage, &favorite.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning favorite: %w", err)
		}
		favorites = append(favorites, favorite)
	}
	return favorites, rows.Err()
}

func (repository *SQLiteFavoriteRepository) IsFavorite(ctx context.Context, userID string, recipeID string) (bool, error) {
	var count int
	err := repository.database.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM favorites WHERE user_id = ? AND recipe_id = ?",
		userID, recipeID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking favorite: %w", err)
	}
	return count > 0, nil
}

func (repository *SQLiteFavoriteRepository) Create(ctx context.Context, favorite models.Favorite) (models.Favorite, error) {
	if favorite.ID == "" {
		favorite.ID = uuid.New().String()
	}
	favorite.CreatedAt = time.Now()

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO favorites (id, user_id, recipe_id, recipe_title, recipe_image, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, recipe_id) DO NOTHING`,
		favorite.ID, favorite.UserID, favorite.RecipeID,
		favorite.RecipeTitle, favorite.RecipeImage, favorite.CreatedAt,
	)
	if err != nil {
		return models.Favorite{}, fmt.Errorf("creating favorite: %w", err)
	}
	return favorite, nil
}

func (repository *SQLiteFavoriteRepository) Delete(ctx context.Context, userID string, recipeID string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = ? AND recipe_id = ?", userID, recipeID,
	)
	if err != nil {
		return fmt.Errorf("deleting favorite: %w", err)
	}
	return nil
}
