package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/petition/internal/domain"
)

// SignatureRepository implements domain.SignatureRepository using SQLite.
type SignatureRepository struct {
	db *sql.DB
}

// NewSignatureRepository creates a new SQLite-backed SignatureRepository.
func NewSignatureRepository(db *DB) *SignatureRepository {
	return &SignatureRepository{db: db.SqlDB}
}

func (r *SignatureRepository) Create(ctx context.Context, sig *domain.Signature) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO signatures (user_id, signature, created_at) VALUES (?, ?, ?)`,
		sig.UserID, sig.Image, now,
	)
	if err != nil {
		return fmt.Errorf("insert signature: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	sig.ID = id
	sig.CreatedAt = now
	return nil
}

func (r *SignatureRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Signature, error) {
	sig := &domain.Signature{}
	// Oldest row wins if a concurrent double submit ever produced two.
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, signature, created_at
		 FROM signatures WHERE user_id = ? ORDER BY id LIMIT 1`, userID,
	).Scan(&sig.ID, &sig.UserID, &sig.Image, &sig.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query signature by user id: %w", err)
	}
	return sig, nil
}

func (r *SignatureRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM signatures WHERE user_id = ?`, userID,
	); err != nil {
		return fmt.Errorf("delete signature: %w", err)
	}
	return nil
}

func (r *SignatureRepository) ListSigners(ctx context.Context) ([]domain.Signer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.first_name, u.last_name, s.signature, p.age, p.city, p.homepage
		 FROM users u
		 JOIN signatures s ON s.user_id = u.id
		 LEFT JOIN user_profiles p ON p.user_id = u.id
		 ORDER BY s.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query signers: %w", err)
	}
	defer rows.Close()

	return scanSigners(rows)
}

func (r *SignatureRepository) ListSignersByCity(ctx context.Context, city string) ([]domain.Signer, error) {
	// LIKE is case-insensitive for ASCII in SQLite and supports the same
	// % wildcards the original ILIKE filter accepted. Signers without a
	// profile have a NULL city and never match.
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.first_name, u.last_name, s.signature, p.age, p.city, p.homepage
		 FROM users u
		 JOIN signatures s ON s.user_id = u.id
		 LEFT JOIN user_profiles p ON p.user_id = u.id
		 WHERE p.city LIKE ?
		 ORDER BY s.id`,
		city,
	)
	if err != nil {
		return nil, fmt.Errorf("query signers by city: %w", err)
	}
	defer rows.Close()

	return scanSigners(rows)
}

func scanSigners(rows *sql.Rows) ([]domain.Signer, error) {
	var signers []domain.Signer
	for rows.Next() {
		var (
			s        domain.Signer
			age      sql.NullInt64
			city     sql.NullString
			homepage sql.NullString
		)
		if err := rows.Scan(&s.UserID, &s.FirstName, &s.LastName, &s.Image, &age, &city, &homepage); err != nil {
			return nil, fmt.Errorf("scan signer: %w", err)
		}
		if age.Valid {
			s.Age = &age.Int64
		}
		s.City = city.String
		s.Homepage = homepage.String
		signers = append(signers, s)
	}
	return signers, rows.Err()
}
