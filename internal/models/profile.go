package models

import "time"

// CreatorProfile is the business record for a creator. Its ID always equals
// the owning Identity's id; it is never generated independently.
type CreatorProfile struct {
	ID                  string    `gorm:"type:uuid;primaryKey" json:"id"`
	FullName            string    `gorm:"not null" json:"fullName"`
	BrandName           string    `gorm:"not null" json:"brandName"`
	Email               string    `gorm:"uniqueIndex;not null" json:"email"`
	SocialMediaHandle   string    `json:"socialMediaHandle"`
	Platform            Platform  `gorm:"not null" json:"platform"`
	Niche               Niche     `gorm:"not null" json:"niche"`
	Country             string    `gorm:"not null" json:"country"`
	BrandProfilePicture *string   `json:"brandProfilePicture"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ClipperProfile is the business record for a clipper. Same join-key rule as
// CreatorProfile: ID equals the Identity id.
type ClipperProfile struct {
	ID                  string    `gorm:"type:uuid;primaryKey" json:"id"`
	FullName            string    `gorm:"not null" json:"fullName"`
	BrandName           string    `gorm:"not null" json:"brandName"`
	Email               string    `gorm:"uniqueIndex;not null" json:"email"`
	SocialMediaHandle   string    `json:"socialMediaHandle"`
	Platform            Platform  `gorm:"not null" json:"platform"`
	Niche               Niche     `gorm:"not null" json:"niche"`
	Country             string    `gorm:"not null" json:"country"`
	FollowerCount       int64     `json:"followerCount"`
	PricePerPost        int64     `json:"pricePerPost"`
	BrandProfilePicture *string   `json:"brandProfilePicture"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// AuthUser is the response shape shared by registration and login: the
// role-specific profile plus the session token pair.
type AuthUser struct {
	User         interface{} `json:"user"`
	Role         Role        `json:"role"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
}
