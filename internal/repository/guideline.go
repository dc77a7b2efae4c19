package repository

import (
	"context"
	"errors"

	"clipmark/internal/models"

	"gorm.io/gorm"
)

// GuidelineRepository defines persistence operations for submission guidelines.
type GuidelineRepository interface {
	Create(ctx context.Context, guideline *models.Guideline) error
	GetByID(ctx context.Context, id string) (*models.Guideline, error)
	ListByClipper(ctx context.Context, clipperID string) ([]models.Guideline, error)
	Update(ctx context.Context, guideline *models.Guideline) error
	Delete(ctx context.Context, id string) error
}

type guidelineRepository struct {
	db *gorm.DB
}

// NewGuidelineRepository returns a new GuidelineRepository implementation.
func NewGuidelineRepository(db *gorm.DB) GuidelineRepository {
	return &guidelineRepository{db: db}
}

func (r *guidelineRepository) Create(ctx context.Context, guideline *models.Guideline) error {
	if err := r.db.WithContext(ctx).Create(guideline).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *guidelineRepository) GetByID(ctx context.Context, id string) (*models.Guideline, error) {
	var guideline models.Guideline
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&guideline).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Guideline", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &guideline, nil
}

func (r *guidelineRepository) ListByClipper(ctx context.Context, clipperID string) ([]models.Guideline, error) {
	var guidelines []models.Guideline
	if err := r.db.WithContext(ctx).Where("clipper_id = ?", clipperID).Order("created_at ASC").Find(&guidelines).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return guidelines, nil
}

func (r *guidelineRepository) Update(ctx context.Context, guideline *models.Guideline) error {
	if err := r.db.WithContext(ctx).Save(guideline).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *guidelineRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Guideline{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
