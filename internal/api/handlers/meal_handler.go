package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/daily-diet-be/internal/services"
	"github.com/isdelr/daily-diet-be/internal/session"
	"github.com/isdelr/daily-diet-be/internal/validation"
	"github.com/rs/zerolog/log"
)

// MealHandler handles HTTP requests for the meal log.
type MealHandler struct {
	service services.MealServiceProvider
}

// NewMealHandler creates a new MealHandler.
func NewMealHandler(service services.MealServiceProvider) *MealHandler {
	return &MealHandler{service: service}
}

// GetAll lists the meals of the caller's session. The session.Require
// middleware runs first, so the token is always present here.
func (h *MealHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	token, _ := session.FromContext(r.Context())

	meals, err := h.service.GetMealsBySession(r.Context(), token)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list meals")
		http.Error(w, "Failed to retrieve meals", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"meals": meals})
}

// Get retrieves one meal, scoped to the caller's session. A meal that exists
// under a different session token is reported as not found.
func (h *MealHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if errs := validation.CheckID(id); errs != nil {
		badRequest(w, errs)
		return
	}
	token, _ := session.FromContext(r.Context())

	meal, err := h.service.GetMealByID(r.Context(), token, id)
	if err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			notFound(w, "Meal does not exist.")
			return
		}
		log.Error().Err(err).Str("meal_id", id).Msg("Failed to get meal")
		http.Error(w, "Failed to retrieve meal", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"meal": meal})
}

// Create logs a new meal. A session cookie is minted if the request carries
// none, so this endpoint sits outside the session gate.
func (h *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload validation.CreateMealPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if errs := validation.Check(payload); errs != nil {
		badRequest(w, errs)
		return
	}

	token, ok := session.FromRequest(r)
	if !ok {
		token = session.Issue(w)
	}

	_, err := h.service.CreateMeal(r.Context(), token, payload.UserID, payload.Name, *payload.Description, *payload.OnDiet)
	if err != nil {
		// Covers the foreign key violation on an unknown user_id as well as
		// any other storage failure.
		log.Error().Err(err).Str("user_id", payload.UserID).Msg("Failed to create meal")
		http.Error(w, "Failed to create meal", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
