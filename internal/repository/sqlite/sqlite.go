package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/petition/internal/domain"
	"github.com/msomdec/petition/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

var (
	_ domain.Database            = (*DB)(nil)
	_ domain.UserRepository      = (*UserRepository)(nil)
	_ domain.SignatureRepository = (*SignatureRepository)(nil)
	_ domain.ProfileRepository   = (*ProfileRepository)(nil)
	_ domain.AccountRepository   = (*AccountRepository)(nil)
)

// DB wraps the SQLite connection and hands out table repositories.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Enable foreign key enforcement.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// Set a reasonable connection pool for SQLite.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies all pending schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.SqlDB)
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.SqlDB.Close()
}

// Users returns the user repository.
func (db *DB) Users() *UserRepository {
	return NewUserRepository(db)
}

// Signatures returns the signature repository.
func (db *DB) Signatures() *SignatureRepository {
	return NewSignatureRepository(db)
}

// Profiles returns the profile repository.
func (db *DB) Profiles() *ProfileRepository {
	return NewProfileRepository(db)
}

// Accounts returns the cross-table account repository.
func (db *DB) Accounts() *AccountRepository {
	return NewAccountRepository(db)
}
