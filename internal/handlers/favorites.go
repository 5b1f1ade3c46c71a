package handlers

import (
	"log/slog"
	"net/http"

	"github.com/JashanveerS/TastyTray/internal/middleware"
	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/JashanveerS/TastyTray/internal/repository"
	"github.com/JashanveerS/TastyTray/internal/services"
	"github.com/go-chi/chi/v5"
)

type FavoriteHandler struct {
	favoriteRepo repository.FavoriteRepository
	hub          *services.RealtimeHub
}

func NewFavoriteHandler(favoriteRepo repository.FavoriteRepository, hub *services.RealtimeHub) *FavoriteHandler {
	return &FavoriteHandler{favoriteRepo: favoriteRepo, hub: hub}
}

func (handler *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	favorites, err := handler.favoriteRepo.FindAll(ctx, user.ID)
	if err != nil {
		slog.Error("finding favorites", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load favorites")
		return
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	writeJSON(w, http.StatusOK, favorites)
}

type addFavoriteRequest struct {
	RecipeID    string `json:"recipe_id"`
	RecipeTitle string `json:"recipe_title"`
	RecipeImage string `json:"recipe_image"`
}

func (handler *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var request addFavoriteRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if request.RecipeID == "" || request.RecipeTitle == "" {
		writeError(w, http.StatusBadRequest, "recipe_id and recipe_title are required")
		return
	}

	favorite, err := handler.favoriteRepo.Create(ctx, models.Favorite{
		UserID:      user.ID,
		RecipeID:    request.RecipeID,
		RecipeTitle: request.RecipeTitle,
		RecipeImage: request.RecipeImage,
	})
	if err != nil {
		slog.Error("adding favorite", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add favorite")
		return
	}

	handler.hub.Publish(user.ID, services.ChangeEvent{Entity: "favorites", Action: "created"})
	writeJSON(w, http.StatusCreated, favorite)
}

func (handler *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)
	recipeID := chi.URLParam(r, "recipeID")

	if err := handler.favoriteRepo.Delete(ctx, user.ID, recipeID); err != nil {
		slog.Error("removing favorite", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to remove favorite")
		return
	}

	handler.hub.Publish(user.ID, services.ChangeEvent{Entity: "favorites", Action: "deleted"})
	w.WriteHeader(http.StatusNoContent)
}
