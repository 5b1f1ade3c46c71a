package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/google/uuid"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByOIDCSubject(ctx context.Context, subject string) (models.User, error)
	Create(ctx context.Context, user models.User) (models.User, error)
	UpdateProfile(ctx context.Context, user models.User) error
}

type SQLiteUserRepository struct {
	database *sql.DB
}

func NewUserRepository(database *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{database: database}
}

const userColumns = `id, email, password_hash, oidc_subject, full_name, avatar_url,
	preferences, allergies, favorite_cuisines, goals, created_at, updated_at`

func (repository *SQLiteUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id,
	)
	user, err := scanUser(row)
	if err != nil {
		return models.User{}, fmt.Errorf("finding user by id: %w", err)
	}
	return user, nil
}

func (repository *SQLiteUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email,
	)
	user, err := scanUser(row)
	if err != nil {
		return models.User{}, fmt.Errorf("finding user by email: %w", err)
	}
	return user, nil
}

func (repository *SQLiteUserRepository) FindByOIDCSubject(ctx context.Context, subject string) (models.User, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE oidc_subject = ?", subject,
	)
	user, err := scanUser(row)
	if err != nil {
		return models.User{}, fmt.Errorf("finding user by oidc subject: %w", err)
	}
	return user, nil
}

func (repository *SQLiteUserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	preferences, allergies, cuisines, goals, err := marshalProfileFields(user)
	if err != nil {
		return models.User{}, err
	}

	_, err = repository.database.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, oidc_subject, full_name, avatar_url,
			preferences, allergies, favorite_cuisines, goals, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.PasswordHash, user.OIDCSubject, user.FullName, user.AvatarURL,
		preferences, allergies, cuisines, goals, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (repository *SQLiteUserRepository) UpdateProfile(ctx context.Context, user models.User) error {
	user.UpdatedAt = time.Now()

	preferences, allergies, cuisines, goals, err := marshalProfileFields(user)
	if err != nil {
		return err
	}

	_, err = repository.database.ExecContext(ctx,
		`UPDATE users SET full_name = ?, avatar_url = ?, preferences = ?, allergies = ?,
			favorite_cuisines = ?, goals = ?, updated_at = ?
		WHERE id = ?`,
		user.FullName, user.AvatarURL, preferences, allergies, cuisines, goals,
		user.UpdatedAt, user.ID,
	)
	if err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}
	return nil
}

func marshalProfileFields(user models.User) (string, string, string, string, error) {
	if user.Preferences == nil {
		user.Preferences = []string{}
	}
	if user.Allergies == nil {
		user.Allergies = []string{}
	}
	if user.FavoriteCuisines == nil {
		user.FavoriteCuisines = []string{}
	}

	preferences, err := json.Marshal(user.Preferences)
	if err != nil {
		return "", "", "", "", fmt.Errorf("marshalling preferences: %w", err)
	}
	allergies, err := json.Marshal(user.Allergies)
	if err != nil {
		return "", "", "", "", fmt.Errorf("marshalling allergies: %w", err)
	}
	cuisines, err := json.Marshal(user.FavoriteCuisines)
	if err != nil {
		return "", "", "", "", fmt.Errorf("marshalling favorite cuisines: %w", err)
	}
	goals, err := json.Marshal(user.Goals)
	if err != nil {
		return "", "", "", "", fmt.Errorf("marshalling goals: %w", err)
	}
	return string(preferences), string(allergies), string(cuisines), string(goals), nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var preferences, allergies, cuisines, goals string
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.OIDCSubject,
		&user.FullName, &user.AvatarURL,
		&preferences, &allergies, &cuisines, &goals,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}
	if err := json.Unmarshal([]byte(preferences), &user.Preferences); err != nil {
		return models.User{}, fmt.Errorf("unmarshalling preferences: %w", err)
	}
	if err := json.Unmarshal([]byte(allergies), &user.Allergies); err != nil {
		return models.User{}, fmt.Errorf("unmarshalling allergies: %w", err)
	}
	if err := json.Unmarshal([]byte(cuisines), &user.FavoriteCuisines); err != nil {
		return models.User{}, fmt.Errorf("unmarshalling favorite cuisines: %w", err)
	}
	if goals != "" && goals != "{}" {
		if err := json.Unmarshal([]byte(goals), &user.Goals); err != nil {
			return models.User{}, fmt.Errorf("unmarshalling goals: %w", err)
		}
	}
	return user, nil
}
