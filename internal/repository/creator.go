package repository

import (
	"context"
	"errors"

	"clipmark/internal/models"

	"gorm.io/gorm"
)

// CreatorRepository defines persistence operations for creator profiles.
type CreatorRepository interface {
	// Create inserts the profile. DB errors are returned unclassified so the
	// registration flow can tell duplicates apart from outages.
	Create(ctx context.Context, profile *models.CreatorProfile) error
	// GetByID returns (nil, nil) when no profile exists. Callers decide
	// whether a missing profile is an error.
	GetByID(ctx context.Context, id string) (*models.CreatorProfile, error)
	GetByEmail(ctx context.Context, email string) (*models.CreatorProfile, error)
	Update(ctx context.Context, profile *models.CreatorProfile) error
	UpdatePicture(ctx context.Context, id string, pictureURL *string) error
	Delete(ctx context.Context, id string) error
}

type creatorRepository struct {
	db *gorm.DB
}

// NewCreatorRepository returns a new CreatorRepository implementation.
func NewCreatorRepository(db *gorm.DB) CreatorRepository {
	return &creatorRepository{db: db}
}

func (r *creatorRepository) Create(ctx context.Context, profile *models.CreatorProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *creatorRepository) GetByID(ctx context.Context, id string) (*models.CreatorProfile, error) {
	var profile models.CreatorProfile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *creatorRepository) GetByEmail(ctx context.Context, email string) (*models.CreatorProfile, error) {
	var profile models.CreatorProfile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *creatorRepository) Update(ctx context.Context, profile *models.CreatorProfile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		if models.IsDuplicateKeyError(err) {
			return models.NewConflictError("Email is already in use")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *creatorRepository) UpdatePicture(ctx context.Context, id string, pictureURL *string) error {
	result := r.db.WithContext(ctx).Model(&models.CreatorProfile{}).Where("id = ?", id).Update("brand_profile_picture", pictureURL)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Creator", id)
	}
	return nil
}

func (r *creatorRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CreatorProfile{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
