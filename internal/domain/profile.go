package domain

import (
	"context"
	"time"
)

// Profile holds the optional details a signer can attach to their account.
// All fields are free-form and optional.
type Profile struct {
	UserID    int64
	Age       *int64
	City      string
	Homepage  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserInfo is a user joined with their optional profile, as displayed on
// the profile edit form.
type UserInfo struct {
	UserID    int64
	FirstName string
	LastName  string
	Email     string
	Age       *int64
	City      string
	Homepage  string
}

// ProfileRepository defines persistence operations for profiles. Upsert is
// keyed on user_id, which enforces the one-profile-per-user invariant.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *Profile) error
	GetByUserID(ctx context.Context, userID int64) (*Profile, error)
	GetUserInfo(ctx context.Context, userID int64) (*UserInfo, error)
}

// AccountRepository performs writes spanning the users and user_profiles
// tables in a single transaction.
type AccountRepository interface {
	SaveIdentity(ctx context.Context, user *User, profile *Profile) error
}
