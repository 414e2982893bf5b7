package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/daily-diet-be/internal/api/handlers"
	"github.com/isdelr/daily-diet-be/internal/services"
	"github.com/isdelr/daily-diet-be/internal/session"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(userService services.UserServiceProvider, mealService services.MealServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	mealHandler := handlers.NewMealHandler(mealService)

	r.Get("/hello", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Hello world!"))
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAll)
		r.Post("/", userHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", userHandler.Get)
			r.Put("/", userHandler.Update)
			r.Delete("/", userHandler.Delete)
		})
	})

	r.Route("/meals", func(r chi.Router) {
		// Creation mints a session cookie when none is present, so it sits
		// outside the gate.
		r.Post("/", mealHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(session.Require)
			r.Get("/", mealHandler.GetAll)
			r.Get("/{id}", mealHandler.Get)
		})
	})

	return r
}
