package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/JashanveerS/TastyTray/internal/middleware"
	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/JashanveerS/TastyTray/internal/repository"
	"github.com/JashanveerS/TastyTray/internal/services"
	"github.com/go-chi/chi/v5"
)

type PantryHandler struct {
	pantryRepo repository.PantryRepository
	hub        *services.RealtimeHub
}

func NewPantryHandler(pantryRepo repository.PantryRepository, hub *services.RealtimeHub) *PantryHandler {
	return &PantryHandler{pantryRepo: pantryRepo, hub: hub}
}

type pantryItemResponse struct {
	models.PantryItem
	ExpiryStatus models.ExpiryStatus `json:"expiry_status"`
}

// expiryStatus derives the display status from an expiry date; items
// within three days count as expiring soon.
func expiryStatus(expiryDate *string, now time.Time) models.ExpiryStatus {
	if expiryDate == nil || *expiryDate == "" {
		return models.ExpiryOK
	}
	expiry, err := time.Parse("2006-01-02", *expiryDate)
	if err != nil {
		return models.ExpiryOK
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if expiry.Before(today) {
		return models.ExpiryExpired
	}
	if !expiry.After(today.AddDate(0, 0, 3)) {
		return models.ExpirySoon
	}
	return models.ExpiryOK
}

func (handler *PantryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	items, err := handler.pantryRepo.FindAll(ctx, user.ID)
	if err != nil {
		slog.Error("finding pantry items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load pantry")
		return
	}

	now := time.Now()
	response := make([]pantryItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, pantryItemResponse{
			PantryItem:   item,
			ExpiryStatus: expiryStatus(item.ExpiryDate, now),
		})
	}
	writeJSON(w, http.StatusOK, response)
}

type pantryItemRequest struct {
	IngredientName string   `json:"ingredient_name"`
	Quantity       *float64 `json:"quantity"`
	Unit           *string  `json:"unit"`
	ExpiryDate     *string  `json:"expiry_date"`
}

func (handler *PantryHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var request pantryItemRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if request.IngredientName == "" {
		writeError(w, http.StatusBadRequest, "ingredient_name is required")
		return
	}

	item, err := handler.pantryRepo.Create(ctx, models.PantryItem{
		UserID:         user.ID,
		IngredientName: request.IngredientName,
		Quantity:       request.Quantity,
		Unit:           request.Unit,
		ExpiryDate:     request.ExpiryDate,
	})
	if err != nil {
		slog.Error("adding pantry item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add pantry item")
		return
	}

	handler.hub.Publish(user.ID, services.ChangeEvent{Entity: "pantry", Action: "created"})
	writeJSON(w, http.StatusCreated, item)
}

// updatePantryItemRequest is patch-style: an omitted field keeps its
// stored value. Clearing unit or expiry is done by sending an empty
// string, since JSON null is indistinguishable from omission here.
type updatePantryItemRequest struct {
	IngredientName *string  `json:"ingredient_name"`
	Quantity       *float64 `json:"quantity"`
	Unit           *string  `json:"unit"`
	ExpiryDate     *string  `json:"expiry_date"`
}

func (handler *PantryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)
	id := chi.URLParam(r, "id")

	item, err := handler.pantryRepo.FindByID(ctx, user.ID, id)
	if err != nil {
		writeError(w, http.StatusNotFound, "pantry item not found")
		return
	}

	var request updatePantryItemRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if request.IngredientName != nil && *request.IngredientName != "" {
		item.IngredientName = *request.IngredientName
	}
	if request.Quantity != nil {
		item.Quantity = request.Quantity
	}
	if request.Unit != nil {
		item.Unit = request.Unit
		if *request.Unit == "" {
			item.Unit = nil
		}
	}
	if request.ExpiryDate != nil {
		item.ExpiryDate = request.ExpiryDate
		if *request.ExpiryDate == "" {
			item.ExpiryDate = nil
		}
	}

	if err := handler.pantryRepo.Update(ctx, item); err != nil {
		slog.Error("updating pantry item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update pantry item")
		return
	}

	handler.hub.Publish(user.ID, services.ChangeEvent{Entity: "pantry", Action: "updated"})
	writeJSON(w, http.StatusOK, item)
}

func (handler *PantryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	if err := handler.pantryRepo.Delete(ctx, user.ID, chi.URLParam(r, "id")); err != nil {
		slog.Error("deleting pantry item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete pantry item")
		return
	}

	handler.hub.Publish(user.ID, services.ChangeEvent{Entity: "pantry", Action: "deleted"})
	w.WriteHeader(http.StatusNoContent)
}
