package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"clipmark/internal/middleware"
	"clipmark/internal/models"
	"clipmark/internal/observability"
	"clipmark/internal/repository"
	"clipmark/internal/storage"
	"clipmark/internal/validation"

	"github.com/google/uuid"
)

// IdentitySessions is the credential-side surface the account facade needs.
type IdentitySessions interface {
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	ChangePassword(ctx context.Context, identityID, currentPassword, newPassword string) error
	Delete(ctx context.Context, identityID string) error
}

// AccountService is the authentication and profile facade for signed-up users.
type AccountService struct {
	identities IdentitySessions
	creators   repository.CreatorRepository
	clippers   repository.ClipperRepository
	store      storage.Store
}

// NewAccountService returns a new AccountService.
func NewAccountService(
	identities IdentitySessions,
	creators repository.CreatorRepository,
	clippers repository.ClipperRepository,
	store storage.Store,
) *AccountService {
	return &AccountService{
		identities: identities,
		creators:   creators,
		clippers:   clippers,
		store:      store,
	}
}

// AuthenticateCreator verifies credentials and loads the creator profile.
// A bad password and a missing profile are distinct failures: the former is
// unauthorized, the latter means credentials were fine but the account is
// half-registered.
func (s *AccountService) AuthenticateCreator(ctx context.Context, email, password string) (*models.AuthUser, error) {
	session, err := s.identities.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	profile, err := s.creators.GetByID(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundMessageError("authentication succeeded but profile not found")
	}
	return &models.AuthUser{
		User:         profile,
		Role:         models.RoleCreator,
		Token:        session.Token,
		RefreshToken: session.RefreshToken,
	}, nil
}

// AuthenticateClipper verifies credentials and loads the clipper profile.
func (s *AccountService) AuthenticateClipper(ctx context.Context, email, password string) (*models.AuthUser, error) {
	session, err := s.identities.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	profile, err := s.clippers.GetByID(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundMessageError("authentication succeeded but profile not found")
	}
	return &models.AuthUser{
		User:         profile,
		Role:         models.RoleClipper,
		Token:        session.Token,
		RefreshToken: session.RefreshToken,
	}, nil
}

// GetAccount resolves the identity to its profile, probing creator first.
func (s *AccountService) GetAccount(ctx context.Context, identityID string) (interface{}, models.Role, error) {
	creator, err := s.creators.GetByID(ctx, identityID)
	if err != nil {
		return nil, "", err
	}
	if creator != nil {
		return creator, models.RoleCreator, nil
	}

	clipper, err := s.clippers.GetByID(ctx, identityID)
	if err != nil {
		return nil, "", err
	}
	if clipper != nil {
		return clipper, models.RoleClipper, nil
	}
	return nil, "", models.NewNotFoundMessageError("Profile not found")
}

// UpdateProfileInput carries the optional profile fields a user may change.
// Empty strings and nil counters mean "leave unchanged".
type UpdateProfileInput struct {
	FullName          string
	BrandName         string
	SocialMediaHandle string
	Platform          string
	Niche             string
	Country           string
	FollowerCount     *int64
	PricePerPost      *int64
}

// UpdateAccount applies a partial profile update for whichever role the
// identity holds.
func (s *AccountService) UpdateAccount(ctx context.Context, identityID string, in UpdateProfileInput) (interface{}, models.Role, error) {
	profile, role, err := s.GetAccount(ctx, identityID)
	if err != nil {
		return nil, "", err
	}

	switch role {
	case models.RoleCreator:
		p := profile.(*models.CreatorProfile)
		if err := applyCommonProfileUpdate(in,
			&p.FullName, &p.BrandName, &p.SocialMediaHandle, &p.Platform, &p.Niche, &p.Country); err != nil {
			return nil, "", err
		}
		if err := s.creators.Update(ctx, p); err != nil {
			return nil, "", err
		}
		return p, role, nil
	default:
		p := profile.(*models.ClipperProfile)
		if err := applyCommonProfileUpdate(in,
			&p.FullName, &p.BrandName, &p.SocialMediaHandle, &p.Platform, &p.Niche, &p.Country); err != nil {
			return nil, "", err
		}
		if in.FollowerCount != nil {
			if err := validation.ValidateCount("follower count", *in.FollowerCount); err != nil {
				return nil, "", models.NewValidationError(err.Error())
			}
			p.FollowerCount = *in.FollowerCount
		}
		if in.PricePerPost != nil {
			if err := validation.ValidateCount("price per post", *in.PricePerPost); err != nil {
				return nil, "", models.NewValidationError(err.Error())
			}
			p.PricePerPost = *in.PricePerPost
		}
		if err := s.clippers.Update(ctx, p); err != nil {
			return nil, "", err
		}
		return p, role, nil
	}
}

func applyCommonProfileUpdate(in UpdateProfileInput, fullName, brandName, handle *string, platform *models.Platform, niche *models.Niche, country *string) error {
	if in.FullName != "" {
		if err := validation.ValidateName("full name", in.FullName); err != nil {
			return models.NewValidationError(err.Error())
		}
		*fullName = in.FullName
	}
	if in.BrandName != "" {
		if err := validation.ValidateName("brand name", in.BrandName); err != nil {
			return models.NewValidationError(err.Error())
		}
		*brandName = in.BrandName
	}
	if in.SocialMediaHandle != "" {
		if err := validation.ValidateSocialMediaHandle(in.SocialMediaHandle); err != nil {
			return models.NewValidationError(err.Error())
		}
		*handle = in.SocialMediaHandle
	}
	if in.Platform != "" {
		p, err := models.ParsePlatform(in.Platform)
		if err != nil {
			return models.NewValidationError(err.Error())
		}
		*platform = p
	}
	if in.Niche != "" {
		n, err := models.ParseNiche(in.Niche)
		if err != nil {
			return models.NewValidationError(err.Error())
		}
		*niche = n
	}
	if in.Country != "" {
		if err := validation.ValidateName("country", in.Country); err != nil {
			return models.NewValidationError(err.Error())
		}
		*country = in.Country
	}
	return nil
}

// ChangePassword validates the new password and rotates the credential.
func (s *AccountService) ChangePassword(ctx context.Context, identityID, currentPassword, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}
	return s.identities.ChangePassword(ctx, identityID, currentPassword, newPassword)
}

// DeleteAccount removes the profile, its picture blob, and the identity.
// Clip submissions are intentionally left in place.
func (s *AccountService) DeleteAccount(ctx context.Context, identityID string) error {
	profile, role, err := s.GetAccount(ctx, identityID)
	if err != nil {
		return err
	}

	var picture *string
	switch role {
	case models.RoleCreator:
		picture = profile.(*models.CreatorProfile).BrandProfilePicture
		if err := s.creators.Delete(ctx, identityID); err != nil {
			return err
		}
	default:
		picture = profile.(*models.ClipperProfile).BrandProfilePicture
		if err := s.clippers.Delete(ctx, identityID); err != nil {
			return err
		}
	}

	if picture != nil {
		s.deleteBlobBestEffort(ctx, *picture, "account deletion")
	}

	return s.identities.Delete(ctx, identityID)
}

// UploadProfileImage replaces the brand picture for the identity's profile.
func (s *AccountService) UploadProfileImage(ctx context.Context, identityID, filename, contentType string, content []byte) (string, error) {
	profile, role, err := s.GetAccount(ctx, identityID)
	if err != nil {
		return "", err
	}

	encoded, err := processProfileImage(content, contentType)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("%s/profile-%s.webp", identityID, uuid.New().String())
	url, err := s.store.Upload(ctx, storage.BucketBrandProfilePics, path, encoded, "image/webp")
	if err != nil {
		observability.StorageOperationsTotal.WithLabelValues(storage.BucketBrandProfilePics, "upload", "failure").Inc()
		return "", models.NewInternalError(err)
	}
	observability.StorageOperationsTotal.WithLabelValues(storage.BucketBrandProfilePics, "upload", "success").Inc()

	var previous *string
	switch role {
	case models.RoleCreator:
		previous = profile.(*models.CreatorProfile).BrandProfilePicture
		err = s.creators.UpdatePicture(ctx, identityID, &url)
	default:
		previous = profile.(*models.ClipperProfile).BrandProfilePicture
		err = s.clippers.UpdatePicture(ctx, identityID, &url)
	}
	if err != nil {
		// The new blob is unreferenced; remove it so storage does not leak.
		s.deleteBlobBestEffort(ctx, url, "profile image upload")
		return "", err
	}

	if previous != nil && *previous != url {
		s.deleteBlobBestEffort(ctx, *previous, "profile image replacement")
	}
	return url, nil
}

// DeleteProfileImage clears the picture column, then removes the blob. If the
// blob removal fails the column is restored so the profile never points at
// nothing while the file still exists.
func (s *AccountService) DeleteProfileImage(ctx context.Context, identityID string) error {
	profile, role, err := s.GetAccount(ctx, identityID)
	if err != nil {
		return err
	}

	var previous *string
	switch role {
	case models.RoleCreator:
		previous = profile.(*models.CreatorProfile).BrandProfilePicture
	default:
		previous = profile.(*models.ClipperProfile).BrandProfilePicture
	}
	if previous == nil || *previous == "" {
		return models.NewNotFoundMessageError("No profile image to delete")
	}

	if err := s.updatePicture(ctx, role, identityID, nil); err != nil {
		return err
	}

	if err := s.deleteBlob(ctx, *previous); err != nil {
		if restoreErr := s.updatePicture(ctx, role, identityID, previous); restoreErr != nil {
			middleware.Logger.ErrorContext(ctx, "Profile image delete rollback failed",
				slog.String("identity_id", identityID),
				slog.String("error", err.Error()),
				slog.String("rollback_error", restoreErr.Error()),
			)
			return models.NewInternalMessageError("failed to delete profile image and rollback also failed", errors.Join(err, restoreErr))
		}
		return models.NewInternalMessageError("failed to delete profile image, previous image was restored by rollback", err)
	}
	return nil
}

func (s *AccountService) updatePicture(ctx context.Context, role models.Role, identityID string, url *string) error {
	if role == models.RoleCreator {
		return s.creators.UpdatePicture(ctx, identityID, url)
	}
	return s.clippers.UpdatePicture(ctx, identityID, url)
}

// deleteBlob removes a stored object by its public URL. A missing object is
// treated as already deleted.
func (s *AccountService) deleteBlob(ctx context.Context, rawURL string) error {
	bucket, path, err := storage.ParseObjectURL(rawURL)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, bucket, path); err != nil && !errors.Is(err, storage.ErrNotFound) {
		observability.StorageOperationsTotal.WithLabelValues(bucket, "delete", "failure").Inc()
		return err
	}
	observability.StorageOperationsTotal.WithLabelValues(bucket, "delete", "success").Inc()
	return nil
}

func (s *AccountService) deleteBlobBestEffort(ctx context.Context, rawURL, reason string) {
	if err := s.deleteBlob(ctx, rawURL); err != nil {
		middleware.Logger.WarnContext(ctx, "Orphaned blob cleanup failed",
			slog.String("url", rawURL),
			slog.String("reason", reason),
			slog.String("error", err.Error()),
		)
	}
}
