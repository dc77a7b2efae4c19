package repository

import (
	"context"
	"errors"

	"clipmark/internal/models"

	"gorm.io/gorm"
)

// ClipperRepository defines persistence operations for clipper profiles.
type ClipperRepository interface {
	// Create inserts the profile. DB errors are returned unclassified so the
	// registration flow can tell duplicates apart from outages.
	Create(ctx context.Context, profile *models.ClipperProfile) error
	// GetByID returns (nil, nil) when no profile exists. Callers decide
	// whether a missing profile is an error.
	GetByID(ctx context.Context, id string) (*models.ClipperProfile, error)
	GetByEmail(ctx context.Context, email string) (*models.ClipperProfile, error)
	Update(ctx context.Context, profile *models.ClipperProfile) error
	UpdatePicture(ctx context.Context, id string, pictureURL *string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]models.ClipperProfile, error)
}

type clipperRepository struct {
	db *gorm.DB
}

// NewClipperRepository returns a new ClipperRepository implementation.
func NewClipperRepository(db *gorm.DB) ClipperRepository {
	return &clipperRepository{db: db}
}

func (r *clipperRepository) Create(ctx context.Context, profile *models.ClipperProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *clipperRepository) GetByID(ctx context.Context, id string) (*models.ClipperProfile, error) {
	var profile models.ClipperProfile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *clipperRepository) GetByEmail(ctx context.Context, email string) (*models.ClipperProfile, error) {
	var profile models.ClipperProfile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *clipperRepository) Update(ctx context.Context, profile *models.ClipperProfile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		if models.IsDuplicateKeyError(err) {
			return models.NewConflictError("Email is already in use")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *clipperRepository) UpdatePicture(ctx context.Context, id string, pictureURL *string) error {
	result := r.db.WithContext(ctx).Model(&models.ClipperProfile{}).Where("id = ?", id).Update("brand_profile_picture", pictureURL)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Clipper", id)
	}
	return nil
}

func (r *clipperRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ClipperProfile{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *clipperRepository) List(ctx context.Context, limit, offset int) ([]models.ClipperProfile, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	var profiles []models.ClipperProfile
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset).Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}
