package domain

import (
	"context"
	"time"
)

// User represents a registered petition account.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// UpdateIdentity persists changes to name and email only; the password
	// hash is never touched by the profile edit flow.
	UpdateIdentity(ctx context.Context, user *User) error
}
