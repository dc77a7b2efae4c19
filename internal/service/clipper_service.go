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

	"github.com/google/uuid"
)

// ClipperService is the public clipper directory plus the portfolio and
// guideline management for clipper accounts.
type ClipperService struct {
	clippers   repository.ClipperRepository
	portfolio  repository.PortfolioRepository
	guidelines repository.GuidelineRepository
	store      storage.Store
}

// NewClipperService returns a new ClipperService.
func NewClipperService(
	clippers repository.ClipperRepository,
	portfolio repository.PortfolioRepository,
	guidelines repository.GuidelineRepository,
	store storage.Store,
) *ClipperService {
	return &ClipperService{
		clippers:   clippers,
		portfolio:  portfolio,
		guidelines: guidelines,
		store:      store,
	}
}

// List returns a page of clipper profiles for the public directory.
func (s *ClipperService) List(ctx context.Context, limit, offset int) ([]models.ClipperProfile, error) {
	return s.clippers.List(ctx, limit, offset)
}

// Get returns one clipper profile with portfolio and guidelines attached.
type ClipperDetail struct {
	Profile    *models.ClipperProfile  `json:"profile"`
	Portfolio  []models.PortfolioImage `json:"portfolio"`
	Guidelines []models.Guideline      `json:"guidelines"`
}

// Get returns the clipper's public detail page data.
func (s *ClipperService) Get(ctx context.Context, clipperID string) (*ClipperDetail, error) {
	profile, err := s.clippers.GetByID(ctx, clipperID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Clipper", clipperID)
	}

	images, err := s.portfolio.ListByClipper(ctx, clipperID)
	if err != nil {
		return nil, err
	}
	guidelines, err := s.guidelines.ListByClipper(ctx, clipperID)
	if err != nil {
		return nil, err
	}

	return &ClipperDetail{
		Profile:    profile,
		Portfolio:  images,
		Guidelines: guidelines,
	}, nil
}

// AddPortfolioImage uploads a showcase image. The cap is checked before the
// blob is written so a rejected image never orphans storage.
func (s *ClipperService) AddPortfolioImage(ctx context.Context, clipperID, filename, contentType string, content []byte) (*models.PortfolioImage, error) {
	count, err := s.portfolio.CountByClipper(ctx, clipperID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxPortfolioImages {
		return nil, models.NewValidationError(fmt.Sprintf("Maximum of %d portfolio images allowed", models.MaxPortfolioImages))
	}

	encoded, err := processProfileImage(content, contentType)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	path := fmt.Sprintf("%s/%s.webp", clipperID, id)
	url, err := s.store.Upload(ctx, storage.BucketPortfolioImages, path, encoded, "image/webp")
	if err != nil {
		observability.StorageOperationsTotal.WithLabelValues(storage.BucketPortfolioImages, "upload", "failure").Inc()
		return nil, models.NewInternalError(err)
	}
	observability.StorageOperationsTotal.WithLabelValues(storage.BucketPortfolioImages, "upload", "success").Inc()

	image := &models.PortfolioImage{
		ID:        id,
		ClipperID: clipperID,
		ImageURL:  url,
		Position:  int(count),
	}
	if err := s.portfolio.Create(ctx, image); err != nil {
		if delErr := s.store.Delete(ctx, storage.BucketPortfolioImages, path); delErr != nil && !errors.Is(delErr, storage.ErrNotFound) {
			middleware.Logger.WarnContext(ctx, "Failed to clean up portfolio blob after insert failure",
				slog.String("path", path),
				slog.String("error", delErr.Error()),
			)
		}
		return nil, err
	}
	return image, nil
}

// ListPortfolio returns the caller's portfolio images in display order.
func (s *ClipperService) ListPortfolio(ctx context.Context, clipperID string) ([]models.PortfolioImage, error) {
	return s.portfolio.ListByClipper(ctx, clipperID)
}

// DeletePortfolioImage removes the blob and the row. An already-missing blob
// does not block the row delete.
func (s *ClipperService) DeletePortfolioImage(ctx context.Context, clipperID, imageID string) error {
	image, err := s.portfolio.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if image.ClipperID != clipperID {
		return models.NewForbiddenError("You are not allowed to delete this image")
	}

	bucket, path, err := storage.ParseObjectURL(image.ImageURL)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := s.store.Delete(ctx, bucket, path); err != nil && !errors.Is(err, storage.ErrNotFound) {
		observability.StorageOperationsTotal.WithLabelValues(bucket, "delete", "failure").Inc()
		return models.NewInternalError(err)
	}
	observability.StorageOperationsTotal.WithLabelValues(bucket, "delete", "success").Inc()

	return s.portfolio.Delete(ctx, imageID)
}

// AddGuideline publishes a submission rule for creators.
func (s *ClipperService) AddGuideline(ctx context.Context, clipperID, text string) (*models.Guideline, error) {
	if text == "" {
		return nil, models.NewValidationError("Guideline text is required")
	}
	if len(text) > 500 {
		return nil, models.NewValidationError("Guideline must not exceed 500 characters")
	}

	guideline := &models.Guideline{
		ID:        uuid.New().String(),
		ClipperID: clipperID,
		Guideline: text,
	}
	if err := s.guidelines.Create(ctx, guideline); err != nil {
		return nil, err
	}
	return guideline, nil
}

// UpdateGuideline edits one of the caller's guidelines.
func (s *ClipperService) UpdateGuideline(ctx context.Context, clipperID, guidelineID, text string) (*models.Guideline, error) {
	if text == "" {
		return nil, models.NewValidationError("Guideline text is required")
	}
	if len(text) > 500 {
		return nil, models.NewValidationError("Guideline must not exceed 500 characters")
	}

	guideline, err := s.guidelines.GetByID(ctx, guidelineID)
	if err != nil {
		return nil, err
	}
	if guideline.ClipperID != clipperID {
		return nil, models.NewForbiddenError("You are not allowed to edit this guideline")
	}

	guideline.Guideline = text
	if err := s.guidelines.Update(ctx, guideline); err != nil {
		return nil, err
	}
	return guideline, nil
}

// DeleteGuideline removes one of the caller's guidelines.
func (s *ClipperService) DeleteGuideline(ctx context.Context, clipperID, guidelineID string) error {
	guideline, err := s.guidelines.GetByID(ctx, guidelineID)
	if err != nil {
		return err
	}
	if guideline.ClipperID != clipperID {
		return models.NewForbiddenError("You are not allowed to delete this guideline")
	}
	return s.guidelines.Delete(ctx, guidelineID)
}

// ListGuidelines returns the caller's guidelines in publish order.
func (s *ClipperService) ListGuidelines(ctx context.Context, clipperID string) ([]models.Guideline, error) {
	return s.guidelines.ListByClipper(ctx, clipperID)
}
