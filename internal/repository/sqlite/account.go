package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msomdec/petition/internal/domain"
)

// AccountRepository implements domain.AccountRepository using SQLite.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new SQLite-backed AccountRepository.
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db.SqlDB}
}

// SaveIdentity updates the user's name and email and upserts their profile
// in one transaction, so a failed email change cannot leave the profile
// half-written.
func (r *AccountRepository) SaveIdentity(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	result, err := tx.ExecContext(ctx,
		`UPDATE users SET first_name = ?, last_name = ?, email = ?, updated_at = ?
		 WHERE id = ?`,
		user.FirstName, user.LastName, user.Email, now, user.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, upsertProfileSQL,
		profile.UserID, nullableAge(profile.Age), profile.City, profile.Homepage, now, now,
	); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	user.UpdatedAt = now
	profile.UpdatedAt = now
	return nil
}
