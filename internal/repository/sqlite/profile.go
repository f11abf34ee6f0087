package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/petition/internal/domain"
)

// ProfileRepository implements domain.ProfileRepository using SQLite.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new SQLite-backed ProfileRepository.
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db.SqlDB}
}

func (r *ProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, upsertProfileSQL,
		profile.UserID, nullableAge(profile.Age), profile.City, profile.Homepage, now, now,
	); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	profile.UpdatedAt = now
	return nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	profile := &domain.Profile{}
	var age sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, age, city, homepage, created_at, updated_at
		 FROM user_profiles WHERE user_id = ?`, userID,
	).Scan(&profile.UserID, &age, &profile.City, &profile.Homepage, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query profile by user id: %w", err)
	}
	if age.Valid {
		profile.Age = &age.Int64
	}
	return profile, nil
}

func (r *ProfileRepository) GetUserInfo(ctx context.Context, userID int64) (*domain.UserInfo, error) {
	info := &domain.UserInfo{}
	var (
		age      sql.NullInt64
		city     sql.NullString
		homepage sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT u.id, u.first_name, u.last_name, u.email, p.age, p.city, p.homepage
		 FROM users u
		 LEFT JOIN user_profiles p ON p.user_id = u.id
		 WHERE u.id = ?`, userID,
	).Scan(&info.UserID, &info.FirstName, &info.LastName, &info.Email, &age, &city, &homepage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user info: %w", err)
	}
	if age.Valid {
		info.Age = &age.Int64
	}
	info.City = city.String
	info.Homepage = homepage.String
	return info, nil
}

const upsertProfileSQL = `
	INSERT INTO user_profiles (user_id, age, city, homepage, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		age = excluded.age,
		city = excluded.city,
		homepage = excluded.homepage,
		updated_at = excluded.updated_at`

func nullableAge(age *int64) any {
	if age == nil {
		return nil
	}
	return *age
}
