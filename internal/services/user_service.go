package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/daily-diet-be/internal/models"
)

// ErrUserNotFound signals a lookup that matched no row; a normal outcome,
// not a storage failure.
var ErrUserNotFound = errors.New("user not found")

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	CreateUser(ctx context.Context, name, email, password string) (models.User, error)
	UpdateUser(ctx context.Context, id string, update UserUpdate) error
	DeleteUser(ctx context.Context, id string) error
}

// UserUpdate carries the partial field set of an update; nil fields are left
// untouched.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

// UserService provides persistence for user accounts.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// GetAllUsers returns every user row, unordered and unpaginated.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, email, password, created_at, updated_at FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	row := s.db.QueryRowContext(ctx, "SELECT id, name, email, password, created_at, updated_at FROM users WHERE id = ?", id)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// CreateUser inserts a new user with a server-generated id.
func (s *UserService) CreateUser(ctx context.Context, name, email, password string) (models.User, error) {
	now := time.Now().UTC()
	user := models.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users(id, name, email, password, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.Password, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UpdateUser applies a partial update and stamps updated_at. Updating an id
// that matches no row is a successful no-op; callers cannot distinguish
// "updated 0 rows" from "updated 1 row".
func (s *UserService) UpdateUser(ctx context.Context, id string, update UserUpdate) error {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *update.Email)
	}
	if update.Password != nil {
		sets = append(sets, "password = ?")
		args = append(args, *update.Password)
	}
	args = append(args, id)

	_, err := s.db.ExecContext(ctx, "UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	return err
}

// DeleteUser removes a user from the database. Deletion is physical, and a
// missing id is a successful no-op.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	return err
}
