package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/JashanveerS/TastyTray/internal/middleware"
	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/JashanveerS/TastyTray/internal/repository"
	ics "github.com/arran4/golang-ical"
	"github.com/go-chi/chi/v5"
)

// ICalHandler serves a user's meal plan as a calendar feed. Feeds are
// authorized by share tokens so calendar apps can poll without a session.
type ICalHandler struct {
	tokenRepo    repository.ShareTokenRepository
	mealPlanRepo repository.MealPlanRepository
	baseURL      string
}

func NewICalHandler(tokenRepo repository.ShareTokenRepository, mealPlanRepo repository.MealPlanRepository, baseURL string) *ICalHandler {
	return &ICalHandler{tokenRepo: tokenRepo, mealPlanRepo: mealPlanRepo, baseURL: baseURL}
}

type shareRequest struct {
	Name string `json:"name"`
}

// Share mints a feed token. The raw token is returned once; only its
// hash is stored.
func (handler *ICalHandler) Share(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var request shareRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if request.Name == "" {
		request.Name = "calendar"
	}

	rawToken, err := generateToken()
	if err != nil {
		slog.Error("generating share token", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create share link")
		return
	}

	token, err := handler.tokenRepo.Create(ctx, models.ShareToken{
		UserID:    user.ID,
		Name:      request.Name,
		TokenHash: repository.HashToken(rawToken),
		Scope:     "ical",
	})
	if err != nil {
		slog.Error("creating share token", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create share link")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":   token.ID,
		"name": token.Name,
		"url":  handler.baseURL + "/ical?token=" + rawToken,
	})
}

func (handler *ICalHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	tokens, err := handler.tokenRepo.FindAll(ctx, user.ID)
	if err != nil {
		slog.Error("finding share tokens", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load share links")
		return
	}
	if tokens == nil {
		tokens = []models.ShareToken{}
	}
	writeJSON(w, http.StatusOK, tokens)
}

// Revoke deletes a share token; calendar apps polling with it get a 401
// from then on.
func (handler *ICalHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	if err := handler.tokenRepo.Delete(ctx, user.ID, chi.URLParam(r, "id")); err != nil {
		slog.Error("revoking share token", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to revoke share link")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (handler *ICalHandler) Feed(w http.ResponseWriter, r *http.Request) {
	rawToken := r.URL.Query().Get("token")
	if rawToken == "" {
		writeError(w, http.StatusUnauthorized, "token is required")
		return
	}

	ctx := r.Context()
	token, err := handler.tokenRepo.FindByTokenHash(ctx, repository.HashToken(rawToken))
	if err != nil || token.Scope != "ical" {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	if token.ExpiresAt != nil && token.ExpiresAt.Before(time.Now()) {
		writeError(w, http.StatusUnauthorized, "token expired")
		return
	}

	meals, err := handler.mealPlanRepo.FindAll(ctx, token.UserID, repository.MealPlanFilter{})
	if err != nil {
		slog.Error("finding meals for feed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build feed")
		return
	}

	calendar := ics.NewCalendar()
	calendar.SetMethod(ics.MethodPublish)
	calendar.SetProductId("-//TastyTray//Meal Plan//EN")
	calendar.SetXWRCalName("TastyTray Meal Plan")

	for _, meal := range meals {
		date, err := time.Parse("2006-01-02", meal.Date)
		if err != nil {
			continue
		}
		event := calendar.AddEvent("meal-" + meal.Date + "-" + string(meal.MealType) + "@tastytray")
		event.SetSummary("[" + capitalizeFirst(string(meal.MealType)) + "] " + meal.RecipeTitle)
		event.SetAllDayStartAt(date)
		event.SetAllDayEndAt(date.AddDate(0, 0, 1))
		event.SetDtStampTime(meal.CreatedAt.UTC())
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=tastytray.ics")
	w.Write([]byte(calendar.Serialize()))
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating share token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
