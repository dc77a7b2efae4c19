package models

import "fmt"

// Role distinguishes the two profile variants an identity can own.
type Role string

const (
	RoleCreator Role = "creator"
	RoleClipper Role = "clipper"
)

// ParseRole validates a role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCreator, RoleClipper:
		return Role(s), nil
	default:
		return "", fmt.Errorf("role must be either creator or clipper")
	}
}

// Platform is the social platform a profile publishes on.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTiktok    Platform = "tiktok"
	PlatformYoutube   Platform = "youtube"
	PlatformX         Platform = "x"
)

// ParsePlatform validates a platform string.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformInstagram, PlatformTiktok, PlatformYoutube, PlatformX:
		return Platform(s), nil
	default:
		return "", fmt.Errorf("platform must be one of: instagram, tiktok, youtube, x")
	}
}

// Niche is the content category a profile belongs to.
type Niche string

const (
	NicheTravel        Niche = "travel"
	NicheFood          Niche = "food"
	NicheEntertainment Niche = "entertainment"
	NicheSport         Niche = "sport"
	NicheFashion       Niche = "fashion"
	NicheTechnology    Niche = "technology"
	NicheGaming        Niche = "gaming"
	NicheBeauty        Niche = "beauty"
	NicheFitness       Niche = "fitness"
	NicheOther         Niche = "other"
)

// ParseNiche validates a niche string.
func ParseNiche(s string) (Niche, error) {
	switch Niche(s) {
	case NicheTravel, NicheFood, NicheEntertainment, NicheSport, NicheFashion,
		NicheTechnology, NicheGaming, NicheBeauty, NicheFitness, NicheOther:
		return Niche(s), nil
	default:
		return "", fmt.Errorf("niche must be one of: travel, food, entertainment, sport, fashion, technology, gaming, beauty, fitness, other")
	}
}

// ClipStatus is the review state of a clip submission.
type ClipStatus string

const (
	ClipStatusPending  ClipStatus = "pending"
	ClipStatusApproved ClipStatus = "approved"
	ClipStatusRejected ClipStatus = "rejected"
)

// ParseClipStatus validates a clip status string.
func ParseClipStatus(s string) (ClipStatus, error) {
	switch ClipStatus(s) {
	case ClipStatusPending, ClipStatusApproved, ClipStatusRejected:
		return ClipStatus(s), nil
	default:
		return "", fmt.Errorf("status must be one of: pending, approved, rejected")
	}
}
