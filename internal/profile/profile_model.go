package profile

import (
	"time"

	"gorm.io/gorm"
)

// Role is the single role type used across every authorization check.
type Role string

const (
	RoleUser          Role = "USER"
	RoleFacilityOwner Role = "FACILITY_OWNER"
	RoleAdmin         Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleFacilityOwner, RoleAdmin:
		return true
	}
	return false
}

// PlayerProfile is the application-side record for an identity-provider user.
type PlayerProfile struct {
	gorm.Model
	UserID        uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Name          string     `json:"name"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Password      string     `json:"-"`
	EmailVerified bool       `gorm:"default:false" json:"email_verified"`
	Role          Role       `gorm:"type:VARCHAR(20);default:'USER'" json:"role"`
	PhoneNumber   string     `json:"phone_number"`
	AvatarURL     string     `json:"avatar_url"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`
	IsBanned      bool       `gorm:"default:false" json:"is_banned"`
	BannedUntil   *time.Time `json:"banned_until,omitempty"`
}

// Banned reports whether the profile is currently banned. A ban with a
// BannedUntil in the past no longer counts.
func (p *PlayerProfile) Banned(now time.Time) bool {
	if !p.IsBanned {
		return false
	}
	if p.BannedUntil != nil && p.BannedUntil.Before(now) {
		return false
	}
	return true
}

// UpdateProfileInput is the request body for profile updates.
type UpdateProfileInput struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	AvatarURL   string `json:"avatar_url"`
}

// BanInput is the request body for admin ban actions.
type BanInput struct {
	BannedUntil *time.Time `json:"banned_until"`
}
