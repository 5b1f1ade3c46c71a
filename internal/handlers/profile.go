package handlers

import (
	"log/slog"
	"net/http"

	"github.com/JashanveerS/TastyTray/internal/middleware"
	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/JashanveerS/TastyTray/internal/repository"
)

type ProfileHandler struct {
	userRepo repository.UserRepository
}

func NewProfileHandler(userRepo repository.UserRepository) *ProfileHandler {
	return &ProfileHandler{userRepo: userRepo}
}

type profileResponse struct {
	ID               string                `json:"id"`
	Email            string                `json:"email"`
	FullName         string                `json:"full_name"`
	AvatarURL        string                `json:"avatar_url"`
	Preferences      []string              `json:"preferences"`
	Allergies        []string              `json:"allergies"`
	FavoriteCuisines []string              `json:"favorite_cuisines"`
	Goals            models.NutritionGoals `json:"goals"`
}

func toProfileResponse(user models.User) profileResponse {
	return profileResponse{
		ID:               user.ID,
		Email:            user.Email,
		FullName:         user.FullName,
		AvatarURL:        user.AvatarURL,
		Preferences:      user.Preferences,
		Allergies:        user.Allergies,
		FavoriteCuisines: user.FavoriteCuisines,
		Goals:            user.Goals,
	}
}

func (handler *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	writeJSON(w, http.StatusOK, toProfileResponse(user))
}

type updateProfileRequest struct {
	FullName         *string                `json:"full_name"`
	AvatarURL        *string                `json:"avatar_url"`
	Preferences      []string               `json:"preferences"`
	Allergies        []string               `json:"allergies"`
	FavoriteCuisines []string               `json:"favorite_cuisines"`
	Goals            *models.NutritionGoals `json:"goals"`
}

func (handler *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var request updateProfileRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if request.FullName != nil {
		user.FullName = *request.FullName
	}
	if request.AvatarURL != nil {
		user.AvatarURL = *request.AvatarURL
	}
	if request.Preferences != nil {
		user.Preferences = request.Preferences
	}
	if request.Allergies != nil {
		user.Allergies = request.Allergies
	}
	if request.FavoriteCuisines != nil {
		user.FavoriteCuisines = request.FavoriteCuisines
	}
	if request.Goals != nil {
		user.Goals = *request.Goals
	}

	if err := handler.userRepo.UpdateProfile(ctx, user); err != nil {
		slog.Error("updating profile", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(user))
}
