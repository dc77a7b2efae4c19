package service

import (
	"context"
	"errors"
	"log/slog"

	"clipmark/internal/middleware"
	"clipmark/internal/models"
	"clipmark/internal/observability"
	"clipmark/internal/repository"
	"clipmark/internal/validation"
)

// IdentityRegistrar is the credential-side surface the registration flow needs.
type IdentityRegistrar interface {
	Register(ctx context.Context, email, password string) (*models.Session, error)
	Delete(ctx context.Context, identityID string) error
}

// RegistrationService runs the two-phase signup: credential record first,
// business profile second, with a compensating identity delete when the
// second phase fails.
type RegistrationService struct {
	identities IdentityRegistrar
	creators   repository.CreatorRepository
	clippers   repository.ClipperRepository
}

// NewRegistrationService returns a new RegistrationService.
func NewRegistrationService(
	identities IdentityRegistrar,
	creators repository.CreatorRepository,
	clippers repository.ClipperRepository,
) *RegistrationService {
	return &RegistrationService{
		identities: identities,
		creators:   creators,
		clippers:   clippers,
	}
}

// RegisterCreatorInput carries the fields for creator signup.
type RegisterCreatorInput struct {
	Email             string
	Password          string
	FullName          string
	BrandName         string
	SocialMediaHandle string
	Platform          string
	Niche             string
	Country           string
}

// RegisterClipperInput carries the fields for clipper signup.
type RegisterClipperInput struct {
	Email             string
	Password          string
	FullName          string
	BrandName         string
	SocialMediaHandle string
	Platform          string
	Niche             string
	Country           string
	FollowerCount     int64
	PricePerPost      int64
}

// RegisterCreator signs up a creator with email/password credentials.
func (s *RegistrationService) RegisterCreator(ctx context.Context, in RegisterCreatorInput) (*models.AuthUser, error) {
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	platform, niche, err := validateProfileFields(in.Email, in.FullName, in.BrandName, in.SocialMediaHandle, in.Platform, in.Niche, in.Country)
	if err != nil {
		return nil, err
	}

	session, err := s.createIdentity(ctx, in.Email, in.Password)
	if err != nil {
		observability.RegistrationsTotal.WithLabelValues("creator", "failure").Inc()
		return nil, classifyRegistrationError(err, models.RoleCreator)
	}

	profile := &models.CreatorProfile{
		ID:                session.ID,
		FullName:          in.FullName,
		BrandName:         in.BrandName,
		Email:             in.Email,
		SocialMediaHandle: in.SocialMediaHandle,
		Platform:          platform,
		Niche:             niche,
		Country:           in.Country,
	}

	if err := s.creators.Create(ctx, profile); err != nil {
		if rbErr := s.rollbackIdentity(ctx, models.RoleCreator, session.ID, err); rbErr != nil {
			return nil, rbErr
		}
		observability.RegistrationsTotal.WithLabelValues("creator", "failure").Inc()
		return nil, classifyRegistrationError(err, models.RoleCreator)
	}

	observability.RegistrationsTotal.WithLabelValues("creator", "success").Inc()
	return &models.AuthUser{
		User:         profile,
		Role:         models.RoleCreator,
		Token:        session.Token,
		RefreshToken: session.RefreshToken,
	}, nil
}

// RegisterClipper signs up a clipper with email/password credentials.
func (s *RegistrationService) RegisterClipper(ctx context.Context, in RegisterClipperInput) (*models.AuthUser, error) {
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	platform, niche, err := validateProfileFields(in.Email, in.FullName, in.BrandName, in.SocialMediaHandle, in.Platform, in.Niche, in.Country)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateCount("follower count", in.FollowerCount); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateCount("price per post", in.PricePerPost); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	session, err := s.createIdentity(ctx, in.Email, in.Password)
	if err != nil {
		observability.RegistrationsTotal.WithLabelValues("clipper", "failure").Inc()
		return nil, classifyRegistrationError(err, models.RoleClipper)
	}

	profile := &models.ClipperProfile{
		ID:                session.ID,
		FullName:          in.FullName,
		BrandName:         in.BrandName,
		Email:             in.Email,
		SocialMediaHandle: in.SocialMediaHandle,
		Platform:          platform,
		Niche:             niche,
		Country:           in.Country,
		FollowerCount:     in.FollowerCount,
		PricePerPost:      in.PricePerPost,
	}

	if err := s.clippers.Create(ctx, profile); err != nil {
		if rbErr := s.rollbackIdentity(ctx, models.RoleClipper, session.ID, err); rbErr != nil {
			return nil, rbErr
		}
		observability.RegistrationsTotal.WithLabelValues("clipper", "failure").Inc()
		return nil, classifyRegistrationError(err, models.RoleClipper)
	}

	observability.RegistrationsTotal.WithLabelValues("clipper", "success").Inc()
	return &models.AuthUser{
		User:         profile,
		Role:         models.RoleClipper,
		Token:        session.Token,
		RefreshToken: session.RefreshToken,
	}, nil
}

func (s *RegistrationService) createIdentity(ctx context.Context, email, password string) (*models.Session, error) {
	session, err := s.identities.Register(ctx, email, password)
	if err != nil {
		return nil, err
	}
	// An identity without an ID cannot be rolled back or joined to a profile.
	if session == nil || session.ID == "" {
		return nil, models.NewInternalMessageError("registration did not return a user ID", nil)
	}
	return session, nil
}

// rollbackIdentity compensates a failed profile insert by deleting the
// just-created identity. Returns a non-nil error only when the rollback
// itself failed, which leaves an orphaned credential behind.
func (s *RegistrationService) rollbackIdentity(ctx context.Context, role models.Role, identityID string, cause error) error {
	if rbErr := s.identities.Delete(ctx, identityID); rbErr != nil {
		middleware.Logger.ErrorContext(ctx, "Registration rollback failed, identity orphaned",
			slog.String("identity_id", identityID),
			slog.String("role", string(role)),
			slog.String("cause", cause.Error()),
			slog.String("rollback_error", rbErr.Error()),
		)
		observability.RegistrationRollbacksTotal.WithLabelValues(string(role), "failure").Inc()
		observability.RegistrationsTotal.WithLabelValues(string(role), "failure").Inc()
		return models.NewInternalMessageError("registration failed and rollback also failed", errors.Join(cause, rbErr))
	}
	observability.RegistrationRollbacksTotal.WithLabelValues(string(role), "success").Inc()
	return nil
}

func validateProfileFields(email, fullName, brandName, handle, platform, niche, country string) (models.Platform, models.Niche, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return "", "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName("full name", fullName); err != nil {
		return "", "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName("brand name", brandName); err != nil {
		return "", "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidateSocialMediaHandle(handle); err != nil {
		return "", "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName("country", country); err != nil {
		return "", "", models.NewValidationError(err.Error())
	}
	p, err := models.ParsePlatform(platform)
	if err != nil {
		return "", "", models.NewValidationError(err.Error())
	}
	n, err := models.ParseNiche(niche)
	if err != nil {
		return "", "", models.NewValidationError(err.Error())
	}
	return p, n, nil
}

// classifyRegistrationError maps storage failures during signup onto the API
// error surface. Conflict and validation errors pass through untouched;
// duplicate key violations become role-specific conflicts; anything else is
// treated as an outage.
func classifyRegistrationError(err error, role models.Role) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeConflict, models.CodeValidation, models.CodeInternal:
			return appErr
		}
	}
	if models.IsDuplicateKeyError(err) {
		if role == models.RoleClipper {
			return models.NewConflictError("Clipper with this email already exists")
		}
		return models.NewConflictError("User with this email already exists")
	}
	return models.NewInternalError(err)
}
