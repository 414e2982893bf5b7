package models

import "time"

// Meal represents one logged meal, owned by an anonymous browser session.
type Meal struct {
	ID string `json:"id"`
	// SessionID is the sole scoping key for meal visibility. Reads never
	// check UserID.
	SessionID   string    `json:"session_id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OnDiet      bool      `json:"on_diet"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
