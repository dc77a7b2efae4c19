package database

import "clipmark/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Identity{},
		&models.CreatorProfile{},
		&models.ClipperProfile{},
		&models.ClipSubmission{},
		&models.PortfolioImage{},
		&models.Guideline{},
	}
}
