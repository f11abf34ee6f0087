package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/petition/internal/domain"
)

// ProfileService handles the optional signer profile and the combined
// user-plus-profile edit flow.
type ProfileService struct {
	users    domain.UserRepository
	profiles domain.ProfileRepository
	accounts domain.AccountRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(users domain.UserRepository, profiles domain.ProfileRepository, accounts domain.AccountRepository) *ProfileService {
	return &ProfileService{
		users:    users,
		profiles: profiles,
		accounts: accounts,
	}
}

// Save records the user's profile details. All fields are optional. The
// write is an upsert keyed on user id, so resubmitting the profile form
// replaces the previous values instead of conflicting.
func (s *ProfileService) Save(ctx context.Context, userID int64, age *int64, city, homepage string) (*domain.Profile, error) {
	profile := &domain.Profile{
		UserID:   userID,
		Age:      age,
		City:     city,
		Homepage: homepage,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

// UserInfo returns the user joined with their optional profile for the
// edit form.
func (s *ProfileService) UserInfo(ctx context.Context, userID int64) (*domain.UserInfo, error) {
	return s.profiles.GetUserInfo(ctx, userID)
}

// SaveIdentity updates the user's name and email and replaces their
// profile in one transaction.
func (s *ProfileService) SaveIdentity(ctx context.Context, userID int64, firstName, lastName, email string, age *int64, city, homepage string) error {
	if firstName == "" || lastName == "" || email == "" {
		return fmt.Errorf("%w: first name, last name, and email are required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	user.FirstName = firstName
	user.LastName = lastName
	user.Email = email

	profile := &domain.Profile{
		UserID:   userID,
		Age:      age,
		City:     city,
		Homepage: homepage,
	}

	if err := s.accounts.SaveIdentity(ctx, user, profile); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("save identity: %w", err)
	}

	return nil
}
