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

type ShoppingHandler struct {
	shoppingRepo repository.ShoppingListRepository
	hub          *services.RealtimeHub
}

func NewShoppingHandler(shoppingRepo repository.ShoppingListRepository, hub *services.RealtimeHub) *ShoppingHandler {
	return &ShoppingHandler{shoppingRepo: shoppingRepo, hub: hub}
}

func (handler *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	items, err := handler.shoppingRepo.FindAll(ctx, user.ID)
	if err != nil {
		slog.Error("finding shopping list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load shopping list")
		return
	}
	if items == nil {
		items = []models.ShoppingListItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

type addShoppingItemRequest struct {
	IngredientName string   `json:"ingredient_name"`
	Quantity       *float64 `json:"quantity"`
	Unit           *string  `json:"unit"`
}

func (handler *ShoppingHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var request addShoppingItemRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if request.IngredientName == "" {
		writeError(w, http.StatusBadRequest, "ingredient_name is required")
		return
	}

	item, err := handler.shoppingRepo.Create(ctx, models.ShoppingListItem{
		UserID:         user.ID,
		IngredientName: request.IngredientName,
		Quantity:       request.Quantity,
		Unit:           request.Unit,
	})
	if err != nil {
		slog.Error("adding shopping list item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	handler.hub.Publish(user.ID, services.ChangeEvent{Entity: "shopping_list", Action: "created"})
	writeJSON(w, http.StatusCreated, item)
}

type toggleRequest struct {
	IsCompleted bool `json:"is_completed"`
}

func (handler *ShoppingHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var request toggleRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := handler.shoppingRepo.SetCompleted(ctx, user.ID, chi.URLParam(r, "id"), request.IsCompleted); err != nil {
		slog.Error("toggling shopping list item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	handler.hub.Publish(user.ID, services.ChangeEvent{Entity: "shopping_list", Action: "updated"})
	w.WriteHeader(http.StatusNoContent)
}

func (handler *ShoppingHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	if err := handler.shoppingRepo.Delete(ctx, user.ID, chi.URLParam(r, "id")); err != nil {
		slog.Error("deleting shopping list item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	handler.hub.Publish(user.ID, services.ChangeEvent{Entity: "shopping_list", Action: "deleted"})
	w.WriteHeader(http.StatusNoContent)
}

func (handler *ShoppingHandler) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	if err := handler.shoppingRepo.DeleteCompleted(ctx, user.ID); err != nil {
		slog.Error("clearing completed items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear completed items")
		return
	}

	handler.hub.Publish(user.ID, services.ChangeEvent{Entity: "shopping_list", Action: "deleted"})
	w.WriteHeader(http.StatusNoContent)
}
