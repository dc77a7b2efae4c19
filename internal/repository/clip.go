package repository

import (
	"context"
	"errors"

	"clipmark/internal/models"

	"gorm.io/gorm"
)

// ClipRepository defines persistence operations for clip submissions.
type ClipRepository interface {
	Create(ctx context.Context, clip *models.ClipSubmission) error
	GetByID(ctx context.Context, id string) (*models.ClipSubmission, error)
	UpdateStatus(ctx context.Context, id string, status models.ClipStatus) (*models.ClipSubmission, error)
	ListByCreator(ctx context.Context, creatorID string) ([]models.ClipSubmission, error)
	ListByClipper(ctx context.Context, clipperID string) ([]models.ClipSubmission, error)
}

type clipRepository struct {
	db *gorm.DB
}

// NewClipRepository returns a new ClipRepository implementation.
func NewClipRepository(db *gorm.DB) ClipRepository {
	return &clipRepository{db: db}
}

func (r *clipRepository) Create(ctx context.Context, clip *models.ClipSubmission) error {
	if err := r.db.WithContext(ctx).Create(clip).Error; err != nil {
		if models.IsDuplicateKeyError(err) {
			return models.NewConflictError("Clip submission already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *clipRepository) GetByID(ctx context.Context, id string) (*models.ClipSubmission, error) {
	var clip models.ClipSubmission
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&clip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Clip submission", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &clip, nil
}

func (r *clipRepository) UpdateStatus(ctx context.Context, id string, status models.ClipStatus) (*models.ClipSubmission, error) {
	result := r.db.WithContext(ctx).Model(&models.ClipSubmission{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Clip submission", id)
	}
	return r.GetByID(ctx, id)
}

func (r *clipRepository) ListByCreator(ctx context.Context, creatorID string) ([]models.ClipSubmission, error) {
	var clips []models.ClipSubmission
	if err := r.db.WithContext(ctx).Where("creator_id = ?", creatorID).Order("created_at DESC").Find(&clips).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return clips, nil
}

func (r *clipRepository) ListByClipper(ctx context.Context, clipperID string) ([]models.ClipSubmission, error) {
	var clips []models.ClipSubmission
	if err := r.db.WithContext(ctx).Where("clipper_id = ?", clipperID).Order("created_at DESC").Find(&clips).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return clips, nil
}
