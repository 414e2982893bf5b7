package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/daily-diet-be/internal/models"
)

// ErrMealNotFound signals that no meal matched both the session token and id.
var ErrMealNotFound = errors.New("meal not found")

// MealServiceProvider defines the interface for meal services.
type MealServiceProvider interface {
	GetMealsBySession(ctx context.Context, sessionID string) ([]models.Meal, error)
	GetMealByID(ctx context.Context, sessionID, id string) (models.Meal, error)
	CreateMeal(ctx context.Context, sessionID, userID, name, description string, onDiet bool) (models.Meal, error)
}

// MealService provides persistence for the meal log.
type MealService struct {
	db *sql.DB
}

// NewMealService creates a new MealService.
func NewMealService(db *sql.DB) *MealService {
	return &MealService{db: db}
}

// GetMealsBySession returns every meal created under the given session token.
func (s *MealService) GetMealsBySession(ctx context.Context, sessionID string) ([]models.Meal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, session_id, user_id, name, description, on_diet, created_at, updated_at FROM meals WHERE session_id = ?",
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meals := make([]models.Meal, 0)
	for rows.Next() {
		var m models.Meal
		if err := rows.Scan(&m.ID, &m.SessionID, &m.UserID, &m.Name, &m.Description, &m.OnDiet, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

// GetMealByID retrieves one meal. Both the session token and the id must
// match the same row; a meal belonging to another session is reported as not
// found, never as forbidden.
func (s *MealService) GetMealByID(ctx context.Context, sessionID, id string) (models.Meal, error) {
	var m models.Meal
	row := s.db.QueryRowContext(ctx,
		"SELECT id, session_id, user_id, name, description, on_diet, created_at, updated_at FROM meals WHERE session_id = ? AND id = ?",
		sessionID, id)
	err := row.Scan(&m.ID, &m.SessionID, &m.UserID, &m.Name, &m.Description, &m.OnDiet, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Meal{}, ErrMealNotFound
		}
		return models.Meal{}, err
	}
	return m, nil
}

// CreateMeal inserts a new meal with a server-generated id. The session and
// user references are fixed at creation; user_id must reference an existing
// user or the insert fails with a foreign key violation.
func (s *MealService) CreateMeal(ctx context.Context, sessionID, userID, name, description string, onDiet bool) (models.Meal, error) {
	now := time.Now().UTC()
	meal := models.Meal{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		UserID:      userID,
		Name:        name,
		Description: description,
		OnDiet:      onDiet,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO meals(id, session_id, user_id, name, description, on_diet, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?)",
		meal.ID, meal.SessionID, meal.UserID, meal.Name, meal.Description, meal.OnDiet, meal.CreatedAt, meal.UpdatedAt)
	if err != nil {
		return models.Meal{}, err
	}
	return meal, nil
}
