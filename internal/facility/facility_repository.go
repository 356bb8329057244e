package facility

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrFacilityNotFound = errors.New("facility not found")
	ErrCourtNotFound    = errors.New("court not found")
)

// FacilityRepository interface defines all database operations for facility management
type FacilityRepository interface {
	// Facility operations
	CreateFacility(facility *Facility) error
	GetFacilityByID(id uint) (*Facility, error)
	// GetApprovedFacilityByID resolves a facility only if it is APPROVED;
	// pending or rejected facilities look like not-found to players.
	GetApprovedFacilityByID(id uint) (*Facility, error)
	GetFacilitiesByOwnerID(ownerID uint) ([]Facility, error)
	GetPendingFacilities(page, limit int) ([]Facility, int64, error)
	UpdateFacility(facility *Facility) error
	UpdateFacilityStatus(id uint, status ApprovalStatus) error
	CountApprovedFacilities() (int64, error)

	// Court operations
	AddCourt(court *Court) error
	GetCourtByID(id uint) (*Court, error)
	GetCourtsByFacilityID(facilityID uint, activeOnly bool) ([]Court, error)
	UpdateCourt(court *Court) error
	CountDistinctSports() (int64, error)
}

type facilityRepository struct {
	db *gorm.DB
}

// NewFacilityRepository creates a new facility repository
func NewFacilityRepository(db *gorm.DB) FacilityRepository {
	return &facilityRepository{db: db}
}

// CreateFacility adds a new facility; it always starts PENDING.
func (r *facilityRepository) CreateFacility(facility *Facility) error {
	facility.Status = StatusPending
	return r.db.Create(facility).Error
}

// GetFacilityByID retrieves a facility by its ID regardless of status.
func (r *facilityRepository) GetFacilityByID(id uint) (*Facility, error) {
	var facility Facility
	if err := r.db.First(&facility, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, err
	}
	return &facility, nil
}

// GetApprovedFacilityByID retrieves an APPROVED facility with its active courts.
func (r *facilityRepository) GetApprovedFacilityByID(id uint) (*Facility, error) {
	var facility Facility
	err := r.db.
		Preload("Courts", "is_active = ?", true).
		Where("id = ? AND status = ?", id, StatusApproved).
		First(&facility).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, err
	}
	return &facility, nil
}

// GetFacilitiesByOwnerID retrieves all facilities owned by a specific user
func (r *facilityRepository) GetFacilitiesByOwnerID(ownerID uint) ([]Facility, error) {
	var facilities []Facility
	if err := r.db.Preload("Courts").Where("owner_id = ?", ownerID).Find(&facilities).Error; err != nil {
		return nil, err
	}
	return facilities, nil
}

// GetPendingFacilities retrieves facilities awaiting approval, oldest first.
func (r *facilityRepository) GetPendingFacilities(page, limit int) ([]Facility, int64, error) {
	var facilities []Facility
	var totalCount int64

	offset := (page - 1) * limit

	query := r.db.Model(&Facility{}).Where("status = ?", StatusPending)

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at asc").Offset(offset).Limit(limit).Find(&facilities).Error; err != nil {
		return nil, 0, err
	}

	return facilities, totalCount, nil
}

// UpdateFacility updates facility information
func (r *facilityRepository) UpdateFacility(facility *Facility) error {
	return r.db.Save(facility).Error
}

// UpdateFacilityStatus transitions a facility's approval status.
func (r *facilityRepository) UpdateFacilityStatus(id uint, status ApprovalStatus) error {
	result := r.db.Model(&Facility{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFacilityNotFound
	}
	return nil
}

func (r *facilityRepository) CountApprovedFacilities() (int64, error) {
	var count int64
	err := r.db.Model(&Facility{}).Where("status = ?", StatusApproved).Count(&count).Error
	return count, err
}

// AddCourt adds a new court to a facility
func (r *facilityRepository) AddCourt(court *Court) error {
	return r.db.Create(court).Error
}

// GetCourtByID retrieves a court by its ID
func (r *facilityRepository) GetCourtByID(id uint) (*Court, error) {
	var court Court
	if err := r.db.First(&court, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return &court, nil
}

// GetCourtsByFacilityID retrieves courts for a facility
func (r *facilityRepository) GetCourtsByFacilityID(facilityID uint, activeOnly bool) ([]Court, error) {
	var courts []Court
	query := r.db.Where("facility_id = ?", facilityID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("name asc").Find(&courts).Error; err != nil {
		return nil, err
	}
	return courts, nil
}

// UpdateCourt updates court information
func (r *facilityRepository) UpdateCourt(court *Court) error {
	return r.db.Save(court).Error
}

// CountDistinctSports counts distinct sport types with active courts on approved facilities.
func (r *facilityRepository) CountDistinctSports() (int64, error) {
	var count int64
	err := r.db.Model(&Court{}).
		Joins("JOIN facilities ON facilities.id = courts.facility_id").
		Where("courts.is_active = ? AND facilities.status = ?", true, StatusApproved).
		Distinct("courts.sport_type").
		Count(&count).Error
	return count, err
}
