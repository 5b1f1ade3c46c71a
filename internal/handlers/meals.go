package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/JashanveerS/TastyTray/internal/middleware"
	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/JashanveerS/TastyTray/internal/recipes"
	"github.com/JashanveerS/TastyTray/internal/repository"
	"github.com/JashanveerS/TastyTray/internal/services"
	"github.com/go-chi/chi/v5"
)

type MealHandler struct {
	planner          *services.PlannerService
	reconcileService *services.ReconcileService
	mealPlanRepo     repository.MealPlanRepository
	hub              *services.RealtimeHub
}

func NewMealHandler(
	planner *services.PlannerService,
	reconcileService *services.ReconcileService,
	mealPlanRepo repository.MealPlanRepository,
	hub *services.RealtimeHub,
) *MealHandler {
	return &MealHandler{
		planner:          planner,
		reconcileService: reconcileService,
		mealPlanRepo:     mealPlanRepo,
		hub:              hub,
	}
}

type weekResponse struct {
	Days []string          `json:"days"`
	Grid services.WeekGrid `json:"grid"`
}

func (handler *MealHandler) Week(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	anchor := time.Now()
	if raw := r.URL.Query().Get("week_start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "week_start must be YYYY-MM-DD")
			return
		}
		anchor = parsed
	}

	days, grid, err := handler.planner.Week(ctx, user.ID, anchor)
	if err != nil {
		slog.Error("loading planner week", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load meal plan")
		return
	}
	writeJSON(w, http.StatusOK, weekResponse{Days: days, Grid: grid})
}

type assignMealRequest struct {
	Date     string          `json:"date"`
	MealType models.MealType `json:"meal_type"`
	Servings int             `json:"servings"`
	Recipe   recipes.Recipe  `json:"recipe"`
}

type assignMealResponse struct {
	Meal        models.MealPlanItem   `json:"meal"`
	Suggestions []services.Suggestion `json:"suggestions"`
}

// Assign puts a recipe into a slot and, when the recipe carries usable
// ingredients, returns the reconciliation suggestions for the client to
// confirm. The slot write and the later reconciliation commit are
// separate requests; a user may assign a meal and never confirm.
func (handler *MealHandler) Assign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var request assignMealRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if request.Recipe.ID == "" || request.Recipe.Name == "" {
		writeError(w, http.StatusBadRequest, "recipe is required")
		return
	}

	meal, err := handler.planner.Assign(ctx, models.MealPlanItem{
		UserID:      user.ID,
		Date:        request.Date,
		MealType:    request.MealType,
		RecipeID:    request.Recipe.ID,
		RecipeTitle: request.Recipe.Name,
		RecipeImage: request.Recipe.Image,
		Servings:    request.Servings,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidMealType) || errors.Is(err, services.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("assigning meal", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save meal")
		return
	}

	suggestions, err := handler.reconcileService.BuildPlan(ctx, user.ID, request.Recipe, meal.Servings)
	if err != nil {
		// The slot is saved; a missing plan just means the client skips
		// the confirmation step.
		slog.Error("building reconciliation plan", "error", err)
		suggestions = nil
	}

	handler.hub.Publish(user.ID, services.ChangeEvent{Entity: "meal_plans", Action: "created"})
	writeJSON(w, http.StatusCreated, assignMealResponse{Meal: meal, Suggestions: suggestions})
}

type reconcileRequest struct {
	Decisions []services.Decision `json:"decisions"`
}

func (handler *MealHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var request reconcileRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, decision := range request.Decisions {
		if !decision.Choice.Valid() {
			writeError(w, http.StatusBadRequest, "invalid choice "+string(decision.Choice))
			return
		}
	}

	if err := handler.reconcileService.Commit(ctx, user.ID, request.Decisions); err != nil {
		slog.Error("committing reconciliation", "error", err)
		writeError(w, http.StatusInternalServerError, "some items could not be saved")
		return
	}

	handler.hub.Publish(user.ID, services.ChangeEvent{Entity: "pantry", Action: "created"})
	handler.hub.Publish(user.ID, services.ChangeEvent{Entity: "shopping_list", Action: "created"})
	w.WriteHeader(http.StatusNoContent)
}

type updateServingsRequest struct {
	Servings int `json:"servings"`
}

func (handler *MealHandler) UpdateServings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var request updateServingsRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if request.Servings < 1 {
		writeError(w, http.StatusBadRequest, "servings must be at least 1, got "+strconv.Itoa(request.Servings))
		return
	}

	if err := handler.mealPlanRepo.UpdateServings(ctx, user.ID, chi.URLParam(r, "id"), request.Servings); err != nil {
		slog.Error("updating meal servings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update meal")
		return
	}

	handler.hub.Publish(user.ID, services.ChangeEvent{Entity: "meal_plans", Action: "updated"})
	w.WriteHeader(http.StatusNoContent)
}

func (handler *MealHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	if err := handler.mealPlanRepo.Delete(ctx, user.ID, chi.URLParam(r, "id")); err != nil {
		slog.Error("deleting meal", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete meal")
		return
	}

	handler.hub.Publish(user.ID, services.ChangeEvent{Entity: "meal_plans", Action: "deleted"})
	w.WriteHeader(http.StatusNoContent)
}
