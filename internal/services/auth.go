package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/JashanveerS/TastyTray/internal/config"
	"github.com/JashanveerS/TastyTray/internal/models"
	"github.com/JashanveerS/TastyTray/internal/repository"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

const sessionLifetime = 72 * time.Hour

// Session is the explicit identity value handed to callers after sign-in:
// who the user is, the bearer token that proves it, and when it lapses.
type Session struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionData struct {
	UserID string `json:"user_id"`
}

type AuthService struct {
	oauthConfig  *oauth2.Config
	oidcVerifier *oidc.IDTokenVerifier
	secureCookie *securecookie.SecureCookie
	jwtSecret    []byte
	userRepo     repository.UserRepository
}

func NewAuthService(ctx context.Context, cfg config.Config, userRepo repository.UserRepository) (*AuthService, error) {
	service := &AuthService{
		secureCookie: securecookie.New([]byte(cfg.SessionSecret), nil),
		jwtSecret:    []byte(cfg.JWTSecret),
		userRepo:     userRepo,
	}

	if cfg.OIDCIssuer == "" {
		slog.Info("OIDC not configured, password sign-in only")
		return service, nil
	}

	provider, err := oidc.NewProvider(ctx, cfg.OIDCIssuer)
	if err != nil {
		return nil, fmt.Errorf("creating OIDC provider: %w", err)
	}

	service.oauthConfig = &oauth2.Config{
		ClientID:     cfg.OIDCClientID,
		ClientSecret: cfg.OIDCClientSecret,
		RedirectURL:  cfg.OIDCRedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}
	service.oidcVerifier = provider.Verifier(&oidc.Config{ClientID: cfg.OIDCClientID})

	return service, nil
}

// SignUp registers an email+password account with its profile metadata
// and returns a live session.
func (service *AuthService) SignUp(ctx context.Context, email string, password string, fullName string) (models.User, Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return models.User{}, Session{}, ErrInvalidCredentials
	}

	if _, err := service.userRepo.FindByEmail(ctx, email); err == nil {
		return models.User{}, Session{}, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, Session{}, fmt.Errorf("checking existing email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, Session{}, fmt.Errorf("hashing password: %w", err)
	}
	hash := string(hashed)

	user, err := service.userRepo.Create(ctx, models.User{
		Email:        email,
		PasswordHash: &hash,
		FullName:     fullName,
	})
	if err != nil {
		return models.User{}, Session{}, fmt.Errorf("creating user: %w", err)
	}

	session, err := service.issueSession(user.ID)
	if err != nil {
		return models.User{}, Session{}, err
	}

	slog.Info("registered user", "id", user.ID, "email", user.Email)
	return user, session, nil
}

// SignIn checks an email+password pair and returns a live session.
func (service *AuthService) SignIn(ctx context.Context, email string, password string) (models.User, Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := service.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, Session{}, ErrInvalidCredentials
		}
		return models.User{}, Session{}, fmt.Errorf("looking up user: %w", err)
	}

	if user.PasswordHash == nil {
		return models.User{}, Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, Session{}, ErrInvalidCredentials
	}

	session, err := service.issueSession(user.ID)
	if err != nil {
		return models.User{}, Session{}, err
	}
	return user, session, nil
}

func (service *AuthService) issueSession(userID string) (Session, error) {
	expiresAt := time.Now().Add(sessionLifetime)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString(service.jwtSecret)
	if err != nil {
		return Session{}, fmt.Errorf("signing session token: %w", err)
	}
	return Session{UserID: userID, Token: signed, ExpiresAt: expiresAt}, nil
}

// VerifyBearer resolves a JWT from an Authorization header to its user.
func (service *AuthService) VerifyBearer(ctx context.Context, tokenString string) (models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return service.jwtSecret, nil
	})
	if err != nil {
		return models.User{}, fmt.Errorf("parsing bearer token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return models.User{}, errors.New("bearer token has no subject")
	}

	user, err := service.userRepo.FindByID(ctx, subject)
	if err != nil {
		return models.User{}, fmt.Errorf("finding bearer user: %w", err)
	}
	return user, nil
}

func (service *AuthService) OIDCConfigured() bool {
	return service.oauthConfig != nil
}

func (service *AuthService) LoginURL(state string) string {
	if service.oauthConfig == nil {
		return ""
	}
	return service.oauthConfig.AuthCodeURL(state)
}

func (service *AuthService) GenerateState() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating state: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// HandleCallback exchanges an OIDC authorization code and provisions or
// refreshes the matching user.
func (service *AuthService) HandleCallback(ctx context.Context, code string) (models.User, Session, error) {
	if service.oauthConfig == nil {
		return models.User{}, Session{}, errors.New("OIDC not configured")
	}

	token, err := service.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return models.User{}, Session{}, fmt.Errorf("exchanging code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return models.User{}, Session{}, errors.New("no id_token in response")
	}

	idToken, err := service.oidcVerifier.Verify(ctx, rawIDToken)
	if err != nil {
		return models.User{}, Session{}, fmt.Errorf("verifying id token: %w", err)
	}

	var claims struct {
		Subject string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return models.User{}, Session{}, fmt.Errorf("parsing claims: %w", err)
	}

	user, err := service.provisionOIDCUser(ctx, claims.Subject, claims.Email, claims.Name, claims.Picture)
	if err != nil {
		return models.User{}, Session{}, err
	}

	session, err := service.issueSession(user.ID)
	if err != nil {
		return models.User{}, Session{}, err
	}
	return user, session, nil
}

func (service *AuthService) provisionOIDCUser(ctx context.Context, subject string, email string, name string, avatarURL string) (models.User, error) {
	existing, err := service.userRepo.FindByOIDCSubject(ctx, subject)
	if err == nil {
		existing.FullName = name
		existing.AvatarURL = avatarURL
		if updateErr := service.userRepo.UpdateProfile(ctx, existing); updateErr != nil {
			slog.Warn("failed to refresh profile on login", "error", updateErr)
		}
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("looking up user by subject: %w", err)
	}

	created, err := service.userRepo.Create(ctx, models.User{
		Email:       strings.ToLower(email),
		OIDCSubject: &subject,
		FullName:    name,
		AvatarURL:   avatarURL,
	})
	if err != nil {
		return models.User{}, fmt.Errorf("creating user: %w", err)
	}

	slog.Info("provisioned new user", "id", created.ID, "email", created.Email)
	return created, nil
}

func (service *AuthService) SetSessionCookie(w http.ResponseWriter, userID string) error {
	data := SessionData{UserID: userID}
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}

	value, err := service.secureCookie.Encode("session", string(encoded))
	if err != nil {
		return fmt.Errorf("encoding session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionLifetime.Seconds()),
	})
	return nil
}

func (service *AuthService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// GetCurrentUser resolves the request's identity from the session cookie
// or, failing that, a bearer token.
func (service *AuthService) GetCurrentUser(r *http.Request) (models.User, error) {
	if cookie, err := r.Cookie("session"); err == nil {
		var decoded string
		if err := service.secureCookie.Decode("session", cookie.Value, &decoded); err == nil {
			var data SessionData
			if err := json.Unmarshal([]byte(decoded), &data); err == nil {
				user, err := service.userRepo.FindByID(r.Context(), data.UserID)
				if err == nil {
					return user, nil
				}
			}
		}
	}

	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return service.VerifyBearer(r.Context(), strings.TrimPrefix(header, "Bearer "))
	}

	return models.User{}, errors.New("no session")
}
