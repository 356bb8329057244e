package profile

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines all database operations for player profiles
type ProfileRepository interface {
	Create(profile *PlayerProfile) error
	GetByUserID(userID uint) (*PlayerProfile, error)
	GetByEmail(email string) (*PlayerProfile, error)
	Update(profile *PlayerProfile) error
	List(page, limit int, role Role) ([]PlayerProfile, int64, error)
	SetBan(userID uint, banned bool, until *time.Time) error
	CountActivePlayers() (int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *PlayerProfile) error {
	return r.db.Create(profile).Error
}

func (r *profileRepository) GetByUserID(userID uint) (*PlayerProfile, error) {
	var profile PlayerProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByEmail(email string) (*PlayerProfile, error) {
	var profile PlayerProfile
	if err := r.db.Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(profile *PlayerProfile) error {
	return r.db.Save(profile).Error
}

// List retrieves profiles with pagination, optionally filtered by role.
func (r *profileRepository) List(page, limit int, role Role) ([]PlayerProfile, int64, error) {
	var profiles []PlayerProfile
	var totalCount int64

	offset := (page - 1) * limit

	query := r.db.Model(&PlayerProfile{})
	if role != "" {
		query = query.Where("role = ?", role)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&profiles).Error; err != nil {
		return nil, 0, err
	}

	return profiles, totalCount, nil
}

func (r *profileRepository) SetBan(userID uint, banned bool, until *time.Time) error {
	result := r.db.Model(&PlayerProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"is_banned":    banned,
			"banned_until": until,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) CountActivePlayers() (int64, error) {
	var count int64
	err := r.db.Model(&PlayerProfile{}).
		Where("is_active = ? AND is_banned = ?", true, false).
		Count(&count).Error
	return count, err
}
