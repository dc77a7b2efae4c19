// Package service provides application business logic.
package service

import (
	"context"
	"errors"

	"clipmark/internal/models"
	"clipmark/internal/repository"
	"clipmark/internal/tokens"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// IdentityService manages credential records and session issuance.
type IdentityService struct {
	identities repository.IdentityRepository
	issuer     *tokens.Issuer
}

// NewIdentityService returns a new IdentityService.
func NewIdentityService(identities repository.IdentityRepository, issuer *tokens.Issuer) *IdentityService {
	return &IdentityService{identities: identities, issuer: issuer}
}

// Register creates an identity and returns a session for it.
// Storage errors are returned unclassified so registration flows can tell
// duplicate emails apart from outages.
func (s *IdentityService) Register(ctx context.Context, email, password string) (*models.Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	identity := &models.Identity{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.identities.Create(ctx, identity); err != nil {
		return nil, err
	}

	return s.sessionFor(identity.ID)
}

// SignIn verifies credentials and returns a session.
func (s *IdentityService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	identity, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, models.NewUnauthorizedError("Invalid login credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid login credentials")
	}

	return s.sessionFor(identity.ID)
}

// SessionFor issues a fresh token pair for an existing identity.
func (s *IdentityService) SessionFor(ctx context.Context, identityID string) (*models.Session, error) {
	return s.sessionFor(identityID)
}

func (s *IdentityService) sessionFor(identityID string) (*models.Session, error) {
	token, refresh, err := s.issuer.IssuePair(identityID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.Session{ID: identityID, Token: token, RefreshToken: refresh}, nil
}

// FindByEmail returns the identity for the email, or nil when none exists.
func (s *IdentityService) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	return s.identities.GetByEmail(ctx, email)
}

// ChangePassword verifies the current password and stores a new hash.
func (s *IdentityService) ChangePassword(ctx context.Context, identityID, currentPassword, newPassword string) error {
	identity, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(currentPassword)); err != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.identities.UpdatePassword(ctx, identityID, string(hash))
}

// Delete removes the identity permanently, freeing its email.
func (s *IdentityService) Delete(ctx context.Context, identityID string) error {
	if identityID == "" {
		return models.NewInternalError(errors.New("identity id is required"))
	}
	return s.identities.Delete(ctx, identityID)
}
