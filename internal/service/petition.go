package service

import (
	"context"
	"fmt"

	"github.com/msomdec/petition/internal/domain"
)

// PetitionService handles signature capture, retraction, and the signer
// listings.
type PetitionService struct {
	signatures domain.SignatureRepository
}

// NewPetitionService creates a new PetitionService.
func NewPetitionService(signatures domain.SignatureRepository) *PetitionService {
	return &PetitionService{signatures: signatures}
}

// Sign records the given canvas image as the user's signature.
func (s *PetitionService) Sign(ctx context.Context, userID int64, image string) (*domain.Signature, error) {
	if image == "" {
		return nil, fmt.Errorf("%w: signature is required", domain.ErrInvalidInput)
	}

	sig := &domain.Signature{
		UserID: userID,
		Image:  image,
	}
	if err := s.signatures.Create(ctx, sig); err != nil {
		return nil, fmt.Errorf("create signature: %w", err)
	}

	return sig, nil
}

// SignatureForUser returns the user's stored signature, or
// domain.ErrNotFound when they have not signed.
func (s *PetitionService) SignatureForUser(ctx context.Context, userID int64) (*domain.Signature, error) {
	return s.signatures.GetByUserID(ctx, userID)
}

// Unsign removes the user's signature. Deleting a signature that does not
// exist is not an error.
func (s *PetitionService) Unsign(ctx context.Context, userID int64) error {
	return s.signatures.DeleteByUserID(ctx, userID)
}

// Signers returns every user who has signed, joined with their optional
// profile. Signers without a profile are included.
func (s *PetitionService) Signers(ctx context.Context) ([]domain.Signer, error) {
	return s.signatures.ListSigners(ctx)
}

// SignersByCity returns the signers whose profile city matches the given
// value, case-insensitively. Signers without a profile never match.
func (s *PetitionService) SignersByCity(ctx context.Context, city string) ([]domain.Signer, error) {
	return s.signatures.ListSignersByCity(ctx, city)
}
