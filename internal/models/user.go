package models

import "time"

// User represents a registered account.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Email has no uniqueness constraint; duplicates are allowed.
	Email string `json:"email"`
	// Password is stored and returned in plaintext. This mirrors the system
	// being ported and is part of its observable wire contract; flagged as a
	// weakness, not silently hardened.
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
