package repository

import (
	"context"
	"errors"

	"clipmark/internal/models"

	"gorm.io/gorm"
)

// PortfolioRepository defines persistence operations for portfolio images.
type PortfolioRepository interface {
	Create(ctx context.Context, image *models.PortfolioImage) error
	GetByID(ctx context.Context, id string) (*models.PortfolioImage, error)
	CountByClipper(ctx context.Context, clipperID string) (int64, error)
	ListByClipper(ctx context.Context, clipperID string) ([]models.PortfolioImage, error)
	Delete(ctx context.Context, id string) error
}

type portfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository returns a new PortfolioRepository implementation.
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

func (r *portfolioRepository) Create(ctx context.Context, image *models.PortfolioImage) error {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *portfolioRepository) GetByID(ctx context.Context, id string) (*models.PortfolioImage, error) {
	var image models.PortfolioImage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Portfolio image", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &image, nil
}

func (r *portfolioRepository) CountByClipper(ctx context.Context, clipperID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PortfolioImage{}).Where("clipper_id = ?", clipperID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *portfolioRepository) ListByClipper(ctx context.Context, clipperID string) ([]models.PortfolioImage, error) {
	var images []models.PortfolioImage
	if err := r.db.WithContext(ctx).Where("clipper_id = ?", clipperID).Order("position ASC, created_at ASC").Find(&images).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return images, nil
}

func (r *portfolioRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PortfolioImage{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
