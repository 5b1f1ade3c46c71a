package repository

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/google/uuid"
)

type ShareTokenRepository interface {
	Create(ctx context.Context, token models.ShareToken) (models.ShareToken, error)
	FindByTokenHash(ctx context.Context, tokenHash string) (models.ShareToken, error)
	FindAll(ctx context.Context, userID string) ([]models.ShareToken, error)
	Delete(ctx context.Context, userID string, id string) error
}

type SQLiteShareTokenRepository struct {
	database *sql.DB
}

func NewShareTokenRepository(database *sql.DB) *SQLiteShareTokenRepository {
	return &SQLiteShareTokenRepository{database: database}
}

func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func (repository *SQLiteShareTokenRepository) Create(ctx context.Context, token models.ShareToken) (models.ShareToken, error) {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.Scope == "" {
		token.Scope = "ical"
	}
	token.CreatedAt = time.Now()

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO share_tokens (id, user_id, name, token_hash, scope, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		token.ID, token.UserID, token.Name, token.TokenHash, token.Scope, token.ExpiresAt, token.CreatedAt,
	)
	if err != nil {
		return models.ShareToken{}, fmt.Errorf("creating share token: %w", err)
	}
	return token, nil
}

func (repository *SQLiteShareTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (models.ShareToken, error) {
	var token models.ShareToken
	err := repository.database.QueryRowContext(ctx,
		`SELECT id, user_id, name, token_hash, scope, expires_at, created_at
		FROM share_tokens WHERE token_hash = ?`, tokenHash,
	).Scan(&token.ID, &token.UserID, &token.Name, &token.TokenHash, &token.Scope, &token.ExpiresAt, &token.CreatedAt)
	if err != nil {
		return models.ShareToken{}, fmt.Errorf("finding share token by hash: %w", err)
	}
	return token, nil
}

func (repository *SQLiteShareTokenRepository) FindAll(ctx context.Context, userID string) ([]models.ShareToken, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, user_id, name, token_hash, scope, expires_at, created_at
		FROM share_tokens WHERE user_id = ? ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding share tokens: %w", err)
	}
	defer rows.Close()

	var tokens []models.ShareToken
	for rows.Next() {
		var token models.ShareToken
		if err := rows.Scan(&token.ID, &token.UserID, &token.Name, &token.TokenHash, &token.Scope, &token.ExpiresAt, &token.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning share token: %w", err)
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

func (repository *SQLiteShareTokenRepository) Delete(ctx context.Context, userID string, id string) error {
	_, err := repository.database.ExecContext(ctx,
		"DELETE FROM share_tokens WHERE user_id = ? AND id = ?", userID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting share token: %w", err)
	}
	return nil
}
