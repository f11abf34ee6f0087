package domain

import (
	"context"
	"time"
)

// Signature is one user's petition endorsement, stored as the data-URL
// image captured from the drawing canvas.
type Signature struct {
	ID        int64
	UserID    int64
	Image     string
	CreatedAt time.Time
}

// Signer is one row of the signature listing: a signed user joined with
// their optional profile. Profile fields are zero-valued when the signer
// never filled one in.
type Signer struct {
	UserID    int64
	FirstName string
	LastName  string
	Image     string
	Age       *int64
	City      string
	Homepage  string
}

// SignatureRepository defines persistence operations for signatures.
// A user has at most one live signature; that rule lives in the handlers,
// not the schema, so GetByUserID returns the oldest row if duplicates slip
// through a concurrent double submit.
type SignatureRepository interface {
	Create(ctx context.Context, sig *Signature) error
	GetByUserID(ctx context.Context, userID int64) (*Signature, error)
	DeleteByUserID(ctx context.Context, userID int64) error
	ListSigners(ctx context.Context) ([]Signer, error)
	ListSignersByCity(ctx context.Context, city string) ([]Signer, error)
}
