package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JashanveerS/TastyTray/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var request signUpRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if request.Email == "" || request.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, session, err := handler.authService.SignUp(r.Context(), request.Email, request.Password, request.FullName)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		slog.Error("signing up", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	if err := handler.authService.SetSessionCookie(w, user.ID); err != nil {
		slog.Error("setting session cookie", "error", err)
	}
	writeJSON(w, http.StatusCreated, session)
}

func (handler *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var request signInRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, session, err := handler.authService.SignIn(r.Context(), request.Email, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		slog.Error("signing in", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to sign in")
		return
	}

	if err := handler.authService.SetSessionCookie(w, user.ID); err != nil {
		slog.Error("setting session cookie", "error", err)
	}
	writeJSON(w, http.StatusOK, session)
}

func (handler *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	handler.authService.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (handler *AuthHandler) OIDCLogin(w http.ResponseWriter, r *http.Request) {
	if !handler.authService.OIDCConfigured() {
		writeError(w, http.StatusNotFound, "OIDC not configured")
		return
	}

	state, err := handler.authService.GenerateState()
	if err != nil {
		slog.Error("generating state", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to start login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   300,
	})
	http.Redirect(w, r, handler.authService.LoginURL(state), http.StatusFound)
}

func (handler *AuthHandler) OIDCCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value != r.URL.Query().Get("state") {
		writeError(w, http.StatusBadRequest, "state mismatch")
		return
	}

	user, _, err := handler.authService.HandleCallback(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		slog.Error("handling OIDC callback", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	if err := handler.authService.SetSessionCookie(w, user.ID); err != nil {
		slog.Error("setting session cookie", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
