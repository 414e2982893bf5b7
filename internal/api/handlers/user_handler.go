package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/daily-diet-be/internal/services"
	"github.com/isdelr/daily-diet-be/internal/validation"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// GetAll handles the request to list all users.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		http.Error(w, "Failed to retrieve users", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

// Get handles the request to get a single user by its ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if errs := validation.CheckID(id); errs != nil {
		badRequest(w, errs)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			notFound(w, "User not found.")
			return
		}
		log.Error().Err(err).Str("user_id", id).Msg("Failed to get user")
		http.Error(w, "Failed to retrieve user", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Create handles new user registration.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload validation.CreateUserPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if errs := validation.Check(payload); errs != nil {
		badRequest(w, errs)
		return
	}

	if _, err := h.service.CreateUser(r.Context(), payload.Name, payload.Email, payload.Password); err != nil {
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to create user")
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Update handles a partial update of a user. Missing fields are left as they
// are; updated_at is stamped either way. An unknown id is a 204 no-op.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if errs := validation.CheckID(id); errs != nil {
		badRequest(w, errs)
		return
	}

	var payload validation.UpdateUserPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if errs := validation.Check(payload); errs != nil {
		badRequest(w, errs)
		return
	}

	update := services.UserUpdate{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	}
	if err := h.service.UpdateUser(r.Context(), id, update); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to update user")
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles the permanent deletion of a user. An unknown id is a 204
// no-op, same as updates.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if errs := validation.CheckID(id); errs != nil {
		badRequest(w, errs)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to delete user")
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
