package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath     string
	SessionSecret    string
	JWTSecret        string
	SpoonacularKey   string
	MealDBBaseURL    string
	SpoonBaseURL     string
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string
	BaseURL          string
	LogLevel         string
	Port             string
}

func Load() (Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	config := Config{
		DatabasePath:     envOrDefault("DATABASE_PATH", "./data/tastytray.db"),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		SpoonacularKey:   os.Getenv("SPOONACULAR_KEY"),
		MealDBBaseURL:    envOrDefault("MEALDB_BASE_URL", "https://www.themealdb.com/api/json/v1/1"),
		SpoonBaseURL:     envOrDefault("SPOONACULAR_BASE_URL", "https://api.spoonacular.com/recipes"),
		OIDCIssuer:       os.Getenv("OIDC_ISSUER"),
		OIDCClientID:     os.Getenv("OIDC_CLIENT_ID"),
		OIDCClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
		OIDCRedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		BaseURL:          envOrDefault("BASE_URL", "http://localhost:8080"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		Port:             envOrDefault("PORT", "8080"),
	}

	if config.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}
	if config.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return config, nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
