package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/msomdec/petition/internal/domain"
	"github.com/msomdec/petition/internal/repository/sqlite"
	"github.com/msomdec/petition/internal/service"
)

const testSessionSecret = "test-secret-key-for-unit-tests"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	// Use cost 4 for fast tests.
	auth := service.NewAuthService(db.Users(), testSessionSecret, 4)
	return auth, db
}

func TestAuthService_Register_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "Alice", "Ash", "new@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if user.Email != "new@example.com" {
		t.Fatalf("expected email new@example.com, got %s", user.Email)
	}
	if user.PasswordHash == "password123" {
		t.Fatal("password must not be stored in the clear")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "First", "User", "dup@example.com", "password123")
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err = auth.Register(ctx, "Second", "User", "dup@example.com", "password456")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_EmptyFields(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		first    string
		last     string
		email    string
		password string
	}{
		{"empty first name", "", "Ash", "a@b.com", "password123"},
		{"empty last name", "Alice", "", "a@b.com", "password123"},
		{"empty email", "Alice", "Ash", "", "password123"},
		{"empty password", "Alice", "Ash", "a@b.com", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Register(ctx, tc.first, tc.last, tc.email, tc.password)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_SaltsDifferPerUser(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	a, err := auth.Register(ctx, "Alice", "Ash", "salt-a@example.com", "samepassword")
	if err != nil {
		t.Fatalf("register a: %v", err)
	}
	b, err := auth.Register(ctx, "Bob", "Birch", "salt-b@example.com", "samepassword")
	if err != nil {
		t.Fatalf("register b: %v", err)
	}

	if a.PasswordHash == b.PasswordHash {
		t.Fatal("two users with the same password must not share a hash")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, "Login", "User", "login@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := auth.Login(ctx, "login@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %d, got %d", registered.ID, user.ID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "Wrong", "Password", "wrongpw@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err = auth.Login(ctx, "wrongpw@example.com", "wrongpassword")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Login(ctx, "nobody@example.com", "password123")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Session_RoundTripUnsigned(t *testing.T) {
	auth, _ := newTestAuthService(t)

	token, err := auth.IssueSession(7, 0)
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}

	session, err := auth.DecodeSession(token)
	if err != nil {
		t.Fatalf("DecodeSession: %v", err)
	}
	if session.UserID != 7 {
		t.Fatalf("expected user 7, got %d", session.UserID)
	}
	if session.Signed() {
		t.Fatal("expected unsigned session")
	}
}

func TestAuthService_Session_RoundTripSigned(t *testing.T) {
	auth, _ := newTestAuthService(t)

	token, err := auth.IssueSession(7, 21)
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}

	session, err := auth.DecodeSession(token)
	if err != nil {
		t.Fatalf("DecodeSession: %v", err)
	}
	if session.UserID != 7 || session.SignatureID != 21 {
		t.Fatalf("unexpected session: %+v", session)
	}
	if !session.Signed() {
		t.Fatal("expected signed session")
	}
}

func TestAuthService_Session_InvalidToken(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.DecodeSession("not-a-valid-token")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Session_TamperedToken(t *testing.T) {
	auth, _ := newTestAuthService(t)

	token, err := auth.IssueSession(7, 0)
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}

	// Flip several characters in the signature.
	tampered := token[:len(token)-5] + "XXXXX"
	_, err = auth.DecodeSession(tampered)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for tampered token, got %v", err)
	}
}

func TestAuthService_Session_WrongSecret(t *testing.T) {
	auth1, db := newTestAuthService(t)

	token, err := auth1.IssueSession(7, 0)
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}

	auth2 := service.NewAuthService(db.Users(), "a-completely-different-secret", 4)
	if _, err := auth2.DecodeSession(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}
