package models

import "time"

// Identity is the credential record backing authentication. It is referenced
// by profiles through its id; the application never exposes it directly.
//
// Identities are hard-deleted: the registration rollback must free the email
// for re-use, so no soft-delete column exists here.
type Identity struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session is the token pair handed out when an identity is created or
// signs in.
type Session struct {
	ID           string `json:"id"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
