package models

import "time"

// ClipSubmission is a video clip a creator submits to a clipper for review.
// Read access is restricted to exactly these two parties.
type ClipSubmission struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID    string     `gorm:"type:uuid;index;not null" json:"creatorId"`
	ClipperID    string     `gorm:"type:uuid;index;not null" json:"clipperId"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ClipURL      string     `gorm:"not null" json:"clipUrl"`
	ThumbnailURL string     `json:"thumbnailUrl"`
	Status       ClipStatus `gorm:"not null;default:pending" json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
