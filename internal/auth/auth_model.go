package auth

import (
	"time"

	"github.com/KrishKoria/odoo-final/internal/profile"
	"gorm.io/gorm"
)

// PendingRegistration holds the role a signup chose before the profile row
// exists. It replaces any in-process signup state: rows are keyed by a signup
// token, consumed when registration completes, and ignored once expired, so
// multiple server instances see the same state.
type PendingRegistration struct {
	gorm.Model
	Token     string       `gorm:"uniqueIndex;not null"`
	Email     string       `gorm:"not null;index"`
	Role      profile.Role `gorm:"type:VARCHAR(20);not null"`
	ExpiresAt time.Time    `gorm:"not null"`
	Consumed  bool         `gorm:"default:false"`
}

type StartSignupRequest struct {
	Email string       `json:"email" binding:"required,email" example:"john@example.com"`
	Role  profile.Role `json:"role" binding:"required" example:"FACILITY_OWNER"`
}

type StartSignupResponse struct {
	SignupToken string    `json:"signup_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type RegisterRequest struct {
	SignupToken string `json:"signup_token" binding:"required"`
	Name        string `json:"name" binding:"required" example:"John Doe"`
	Email       string `json:"email" binding:"required,email" example:"john@example.com"`
	Password    string `json:"password" binding:"required,min=8" example:"password123"`
	PhoneNumber string `json:"phone_number" example:"+919876543210"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"john@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type AuthResponse struct {
	AccessToken string                 `json:"access_token"`
	User        *profile.PlayerProfile `json:"user"`
}
