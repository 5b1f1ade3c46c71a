package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JashanveerS/TastyTray/internal/middleware"
	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/JashanveerS/TastyTray/internal/repository"
	"github.com/JashanveerS/TastyTray/internal/services"
	"github.com/JashanveerS/TastyTray/internal/testutil"
	"github.com/go-chi/chi/v5"
)

func TestExpiryStatus(t *testing.T) {
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)

	ptr := func(s string) *string { return &s }

	cases := []struct {
		name   string
		expiry *string
		want   models.ExpiryStatus
	}{
		{"no expiry", nil, models.ExpiryOK},
		{"empty expiry", ptr(""), models.ExpiryOK},
		{"unparseable expiry", ptr("soonish"), models.ExpiryOK},
		{"yesterday", ptr("2024-06-09"), models.ExpiryExpired},
		{"today", ptr("2024-06-10"), models.ExpirySoon},
		{"in three days", ptr("2024-06-13"), models.ExpirySoon},
		{"in four days", ptr("2024-06-14"), models.ExpiryOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := expiryStatus(tc.expiry, now); got != tc.want {
				t.Errorf("expiryStatus(%v) = %s, want %s", tc.expiry, got, tc.want)
			}
		})
	}
}

func putPantryItem(t *testing.T, handler *PantryHandler, user models.User, id string, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodPut, "/api/pantry/"+id, strings.NewReader(body))
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	ctx := context.WithValue(request.Context(), chi.RouteCtxKey, routeCtx)
	ctx = context.WithValue(ctx, middleware.UserContextKey, user)
	request = request.WithContext(ctx)

	recorder := httptest.NewRecorder()
	handler.Update(recorder, request)
	return recorder
}

func TestPantryUpdateIsPatchStyle(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	userID := testutil.CreateTestUser(t, db)
	user := models.User{ID: userID}
	pantryRepo := repository.NewPantryRepository(db)
	handler := NewPantryHandler(pantryRepo, services.NewRealtimeHub())
	ctx := context.Background()

	quantity := 2.0
	unit := "kg"
	expiry := "2024-07-01"
	item, err := pantryRepo.Create(ctx, models.PantryItem{
		UserID:         userID,
		IngredientName: "Rice",
		Quantity:       &quantity,
		Unit:           &unit,
		ExpiryDate:     &expiry,
	})
	if err != nil {
		t.Fatalf("creating pantry item: %v", err)
	}

	// Renaming only must leave quantity, unit and expiry untouched.
	recorder := putPantryItem(t, handler, user, item.ID, `{"ingredient_name":"Basmati Rice"}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body)
	}
	updated, err := pantryRepo.FindByID(ctx, userID, item.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if updated.IngredientName != "Basmati Rice" {
		t.Errorf("name not updated: %s", updated.IngredientName)
	}
	if updated.Quantity == nil || *updated.Quantity != 2.0 {
		t.Errorf("omitted quantity should be preserved, got %v", updated.Quantity)
	}
	if updated.Unit == nil || *updated.Unit != "kg" {
		t.Errorf("omitted unit should be preserved, got %v", updated.Unit)
	}
	if updated.ExpiryDate == nil || *updated.ExpiryDate != "2024-07-01" {
		t.Errorf("omitted expiry should be preserved, got %v", updated.ExpiryDate)
	}

	// An explicit empty string clears unit and expiry.
	recorder = putPantryItem(t, handler, user, item.ID, `{"unit":"","expiry_date":""}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body)
	}
	updated, err = pantryRepo.FindByID(ctx, userID, item.ID)
	if err != nil {
		t.Fatalf("FindByID after clear: %v", err)
	}
	if updated.Unit != nil {
		t.Errorf("unit should be cleared, got %v", *updated.Unit)
	}
	if updated.ExpiryDate != nil {
		t.Errorf("expiry should be cleared, got %v", *updated.ExpiryDate)
	}
	if updated.IngredientName != "Basmati Rice" {
		t.Errorf("name should be preserved, got %s", updated.IngredientName)
	}
}
