package server

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/JashanveerS/TastyTray/internal/config"
	"github.com/JashanveerS/TastyTray/internal/handlers"
	"github.com/JashanveerS/TastyTray/internal/middleware"
	"github.com/JashanveerS/TastyTray/internal/recipes"
	"github.com/JashanveerS/TastyTray/internal/repository"
	"github.com/JashanveerS/TastyTray/internal/services"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	router *chi.Mux
	config config.Config
}

func New(database *sql.DB, cfg config.Config, authService *services.AuthService) *Server {
	userRepo := repository.NewUserRepository(database)
	favoriteRepo := repository.NewFavoriteRepository(database)
	pantryRepo := repository.NewPantryRepository(database)
	shoppingRepo := repository.NewShoppingListRepository(database)
	mealPlanRepo := repository.NewMealPlanRepository(database)
	tokenRepo := repository.NewShareTokenRepository(database)

	recipeService := recipes.NewService(cfg.MealDBBaseURL, cfg.SpoonBaseURL, cfg.SpoonacularKey)
	reconcileService := services.NewReconcileService(pantryRepo, shoppingRepo)
	planner := services.NewPlannerService(mealPlanRepo)
	hub := services.NewRealtimeHub()

	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(userRepo)
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteRepo, hub)
	pantryHandler := handlers.NewPantryHandler(pantryRepo, hub)
	shoppingHandler := handlers.NewShoppingHandler(shoppingRepo, hub)
	mealHandler := handlers.NewMealHandler(planner, reconcileService, mealPlanRepo, hub)
	icalHandler := handlers.NewICalHandler(tokenRepo, mealPlanRepo, cfg.BaseURL)
	realtimeHandler := handlers.NewRealtimeHandler(hub)

	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Compress(5))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Post("/auth/signup", authHandler.SignUp)
	router.Post("/auth/login", authHandler.SignIn)
	router.Post("/auth/logout", authHandler.SignOut)
	router.Get("/auth/oidc", authHandler.OIDCLogin)
	router.Get("/auth/callback", authHandler.OIDCCallback)

	router.Get("/ical", icalHandler.Feed)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(authService))

		r.Get("/api/profile", profileHandler.Get)
		r.Put("/api/profile", profileHandler.Update)

		r.Get("/api/recipes/random", recipeHandler.Random)
		r.Get("/api/recipes/search", recipeHandler.Search)

		r.Get("/api/favorites", favoriteHandler.List)
		r.Post("/api/favorites", favoriteHandler.Add)
		r.Delete("/api/favorites/{recipeID}", favoriteHandler.Remove)

		r.Get("/api/pantry", pantryHandler.List)
		r.Post("/api/pantry", pantryHandler.Add)
		r.Put("/api/pantry/{id}", pantryHandler.Update)
		r.Delete("/api/pantry/{id}", pantryHandler.Remove)

		r.Get("/api/shopping", shoppingHandler.List)
		r.Post("/api/shopping", shoppingHandler.Add)
		r.Post("/api/shopping/{id}/toggle", shoppingHandler.Toggle)
		r.Delete("/api/shopping/completed", shoppingHandler.ClearCompleted)
		r.Delete("/api/shopping/{id}", shoppingHandler.Remove)

		r.Get("/api/meals", mealHandler.Week)
		r.Post("/api/meals", mealHandler.Assign)
		r.Post("/api/meals/reconcile", mealHandler.Reconcile)
		r.Put("/api/meals/{id}", mealHandler.UpdateServings)
		r.Delete("/api/meals/{id}", mealHandler.Remove)

		r.Get("/api/calendar/share", icalHandler.List)
		r.Post("/api/calendar/share", icalHandler.Share)
		r.Delete("/api/calendar/share/{id}", icalHandler.Revoke)

		r.Get("/api/realtime", realtimeHandler.Connect)
	})

	return &Server{
		router: router,
		config: cfg,
	}
}

func (server *Server) Start() error {
	address := ":" + server.config.Port
	slog.Info("starting server", "address", address)
	return http.ListenAndServe(address, server.router)
}
