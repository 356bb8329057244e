package auth

import (
	"errors"
	"time"

	"github.com/KrishKoria/odoo-final/internal/profile"
	"gorm.io/gorm"
)

var (
	ErrPendingNotFound = errors.New("pending registration not found")
	ErrPendingExpired  = errors.New("pending registration expired")
)

// AuthRepository defines database operations for the signup/login flow
type AuthRepository interface {
	CreatePendingRegistration(pending *PendingRegistration) error
	// ConsumePendingRegistration marks the pending row consumed and creates the
	// profile in the same transaction, so the chosen role can never be lost or
	// applied twice.
	ConsumePendingRegistration(token string, now time.Time, p *profile.PlayerProfile) error
}

type authRepository struct {
	db *gorm.DB
}

// NewAuthRepository creates a new auth repository
func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreatePendingRegistration(pending *PendingRegistration) error {
	return r.db.Create(pending).Error
}

func (r *authRepository) ConsumePendingRegistration(token string, now time.Time, p *profile.PlayerProfile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var pending PendingRegistration
		if err := tx.Where("token = ? AND consumed = ?", token, false).First(&pending).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPendingNotFound
			}
			return err
		}

		if pending.ExpiresAt.Before(now) {
			return ErrPendingExpired
		}

		if err := tx.Model(&pending).Update("consumed", true).Error; err != nil {
			return err
		}

		p.Role = pending.Role
		if err := tx.Create(p).Error; err != nil {
			return err
		}

		// This deployment is its own identity provider, so the external user id
		// is the profile id.
		if p.UserID == 0 {
			p.UserID = p.ID
			return tx.Model(p).Update("user_id", p.UserID).Error
		}
		return nil
	})
}
