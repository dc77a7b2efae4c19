package models

import "time"

// MaxPortfolioImages caps the portfolio collection per clipper. The check
// runs before any blob upload so a rejected image never orphans storage.
const MaxPortfolioImages = 4

// PortfolioImage is a showcase image owned by a clipper. Created and
// destroyed independently of the profile row.
type PortfolioImage struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ClipperID string    `gorm:"type:uuid;index;not null" json:"clipperId"`
	ImageURL  string    `gorm:"not null" json:"imageUrl"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// Guideline is a free-text submission rule a clipper publishes for creators.
type Guideline struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ClipperID string    `gorm:"type:uuid;index;not null" json:"clipperId"`
	Guideline string    `gorm:"not null" json:"guideline"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
